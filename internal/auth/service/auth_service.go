package service

import (
	"context"
	"errors"

	authrepo "github.com/recipevault/backend/internal/auth/repository"
	commonerrors "github.com/recipevault/backend/internal/common/errors"
	"github.com/recipevault/backend/internal/common/logger"
	userdomain "github.com/recipevault/backend/internal/user/domain"
	userrepo "github.com/recipevault/backend/internal/user/repository"
)

type AuthService struct {
	userRepo  userrepo.Repository
	tokenRepo authrepo.TokenRepository
	hasher    Hasher
	issuer    *TokenIssuer
	log       *logger.Logger
}

// Hasher is the verification side of password hashing; Compare must be a
// constant-time comparison against the stored hash.
type Hasher interface {
	Compare(hash string, password string) error
}

func NewAuthService(
	userRepo userrepo.Repository,
	tokenRepo authrepo.TokenRepository,
	hasher Hasher,
	issuer *TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		issuer:    issuer,
		log:       log,
	}
}

// Authenticate verifies an email/password pair. The password is compared
// exactly as submitted; the failure mode never distinguishes an unknown
// email from a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (userdomain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			incrementAuthFailures()
			return userdomain.User{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		incrementAuthFailures()
		return userdomain.User{}, ErrInvalidCredentials
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return user, nil
}

// IssueToken mints a fresh opaque token for an already-authenticated user.
func (s *AuthService) IssueToken(ctx context.Context, user userdomain.User) (string, error) {
	token, err := s.issuer.Issue(ctx, user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "token_issue_failed",
		}).Errorf("token issue failed: %v", err)
		return "", err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "token_issued",
	}).Info("token issued")

	return token, nil
}

// ResolveToken maps a presented bearer token back to its user. Every failure
// collapses into ErrUnauthorized before any business logic can run.
func (s *AuthService) ResolveToken(ctx context.Context, rawToken string) (userdomain.User, error) {
	if rawToken == "" {
		incrementTokenResolveRejected()
		return userdomain.User{}, ErrUnauthorized
	}

	stored, err := s.tokenRepo.FindByTokenHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, authrepo.ErrTokenNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"action": "token_resolve_not_found",
			}).Warn("token resolve failed: not found")
			incrementTokenResolveRejected()
			return userdomain.User{}, ErrUnauthorized
		}
		s.log.WithFields(ctx, logger.Fields{
			"action": "token_resolve_lookup_failed",
		}).Errorf("token resolve lookup failed: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	user, err := s.userRepo.FindByID(ctx, userdomain.ID(stored.UserID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": stored.UserID,
				"action":  "token_resolve_user_missing",
			}).Warn("token resolve failed: bound user missing")
			incrementTokenResolveRejected()
			return userdomain.User{}, ErrUnauthorized
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": stored.UserID,
			"action":  "token_resolve_user_lookup_failed",
		}).Errorf("token resolve failed: user lookup error: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return user, nil
}
