package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/recipevault/backend/internal/common/clock"
	commoncrypto "github.com/recipevault/backend/internal/common/crypto"
	commonerrors "github.com/recipevault/backend/internal/common/errors"
	"github.com/recipevault/backend/internal/common/logger"
	"github.com/recipevault/backend/internal/user/domain"
	userrepo "github.com/recipevault/backend/internal/user/repository"
)

// UserService owns the inbound/outbound shaping of user records. The wire
// shape is the explicit allow-list on CreateInput/UpdateInput; the password
// never appears in a Profile.
type UserService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	validate    *validator.Validate
	log         *logger.Logger
}

func NewUserService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *UserService {
	return &UserService{
		repo:        repo,
		hasher:      hasher,
		idGenerator: idGenerator,
		clock:       clk,
		validate:    validator.New(),
		log:         log,
	}
}

type CreateInput struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=5,max=72"`
	Name     string `validate:"omitempty,max=255"`
}

// UpdateInput carries the subset of fields the caller supplied; a nil field
// is left untouched.
type UpdateInput struct {
	Email    *string
	Password *string
	Name     *string
}

func (s *UserService) Create(ctx context.Context, input CreateInput) (Profile, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "user_create_attempt",
	}).Info("user create attempt")

	if err := s.validate.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "user_create_validation_failed",
		}).Warnf("user create validation failed: %v", err)
		return Profile{}, ErrValidation.WithDetails(validationDetails(err))
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "user_create_hash_failed",
		}).Errorf("user create failed: password hash error: %v", err)
		return Profile{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "user_create_id_generation_failed",
		}).Errorf("user create failed: id generation error: %v", err)
		return Profile{}, err
	}

	user := domain.User{
		ID:           domain.ID(id),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "user_create_email_exists",
			}).Warn("user create failed: email already exists")
			return Profile{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "user_create_failed",
		}).Errorf("user create failed: %v", err)
		return Profile{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	incrementUsersCreated()

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "user_create_success",
	}).Info("user create success")

	return toProfile(user), nil
}

func (s *UserService) Update(ctx context.Context, user domain.User, input UpdateInput) (Profile, error) {
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "user_update_attempt",
	}).Info("user update attempt")

	if details := s.validateUpdate(input); len(details) > 0 {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "user_update_validation_failed",
		}).Warn("user update validation failed")
		return Profile{}, ErrValidation.WithDetails(details)
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(user.ID),
				"action":  "user_update_hash_failed",
			}).Errorf("user update failed: password hash error: %v", err)
			return Profile{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": string(user.ID),
				"action":  "user_update_email_exists",
			}).Warn("user update failed: email already exists")
			return Profile{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "user_update_failed",
		}).Errorf("user update failed: %v", err)
		return Profile{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "user_update_success",
	}).Info("user update success")

	return toProfile(user), nil
}

func (s *UserService) validateUpdate(input UpdateInput) map[string]any {
	details := make(map[string]any)

	if input.Email != nil {
		if err := s.validate.Var(*input.Email, "required,email,max=254"); err != nil {
			details["email"] = "must be a valid email address"
		}
	}
	if input.Password != nil {
		if err := s.validate.Var(*input.Password, "required,min=5,max=72"); err != nil {
			details["password"] = "must be between 5 and 72 characters"
		}
	}
	if input.Name != nil {
		if err := s.validate.Var(*input.Name, "max=255"); err != nil {
			details["name"] = "must be at most 255 characters"
		}
	}

	return details
}

func validationDetails(err error) map[string]any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			details["email"] = "must be a valid email address"
		case "Password":
			details["password"] = "must be between 5 and 72 characters"
		case "Name":
			details["name"] = "must be at most 255 characters"
		}
	}

	return details
}
