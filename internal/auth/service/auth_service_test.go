package service

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "github.com/recipevault/backend/internal/auth/domain"
	"github.com/recipevault/backend/internal/common/clock"
	commonerrors "github.com/recipevault/backend/internal/common/errors"
	"github.com/recipevault/backend/internal/common/logger"
	userdomain "github.com/recipevault/backend/internal/user/domain"
	userrepo "github.com/recipevault/backend/internal/user/repository"
)

func setupAuthService(t *testing.T) (*AuthService, *mockUserRepo, *mockTokenRepo, *mockHasher, *mockIDGenerator, *clock.MockClock) {
	t.Helper()

	mockUsers := &mockUserRepo{}
	mockTokens := &mockTokenRepo{}
	hasher := &mockHasher{}
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, _ := logger.New("", "test", "error")

	issuer := NewTokenIssuer(mockTokens, idGen, mockClock)
	svc := NewAuthService(mockUsers, mockTokens, hasher, issuer, log)

	return svc, mockUsers, mockTokens, hasher, idGen, mockClock
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, mockUsers, _, hasher, _, _ := setupAuthService(t)

	stored := userdomain.User{
		ID:           "user-123",
		Email:        "a@x.com",
		PasswordHash: "hashed_hunter2",
	}

	mockUsers.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		if email != "a@x.com" {
			t.Errorf("expected lookup for a@x.com, got %s", email)
		}
		return stored, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		if hash != stored.PasswordHash {
			t.Errorf("expected stored hash, got %s", hash)
		}
		if password != "hunter2" {
			t.Errorf("expected password hunter2, got %q", password)
		}
		return nil
	}

	user, err := svc.Authenticate(context.Background(), "a@x.com", "hunter2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if user.ID != stored.ID {
		t.Errorf("expected user %s, got %s", stored.ID, user.ID)
	}
}

func TestAuthService_Authenticate_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc, mockUsers, _, hasher, _, _ := setupAuthService(t)

	mockUsers.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		if email == "known@x.com" {
			return userdomain.User{ID: "user-123", Email: email, PasswordHash: "hash"}, nil
		}
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("mismatch")
	}

	_, errUnknown := svc.Authenticate(context.Background(), "nobody@x.com", "whatever")
	_, errWrongPw := svc.Authenticate(context.Background(), "known@x.com", "wrong")

	if errUnknown == nil || errWrongPw == nil {
		t.Fatal("expected both authentications to fail")
	}

	deUnknown, ok := commonerrors.AsDomainError(errUnknown)
	if !ok {
		t.Fatalf("expected domain error, got %v", errUnknown)
	}
	deWrongPw, ok := commonerrors.AsDomainError(errWrongPw)
	if !ok {
		t.Fatalf("expected domain error, got %v", errWrongPw)
	}

	if deUnknown.Code() != deWrongPw.Code() || deUnknown.Message() != deWrongPw.Message() {
		t.Errorf("failure modes must be indistinguishable: %q vs %q", deUnknown.Message(), deWrongPw.Message())
	}

	if deUnknown.HTTPStatus() != 400 {
		t.Errorf("expected status 400, got %d", deUnknown.HTTPStatus())
	}
}

func TestAuthService_Authenticate_PasswordWhitespacePreserved(t *testing.T) {
	svc, mockUsers, _, hasher, _, _ := setupAuthService(t)

	mockUsers.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{ID: "user-123", Email: email, PasswordHash: "hash"}, nil
	}

	var got string
	hasher.compareFunc = func(hash string, password string) error {
		got = password
		return nil
	}

	if _, err := svc.Authenticate(context.Background(), "a@x.com", "  spaced pass  "); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got != "  spaced pass  " {
		t.Errorf("password must reach comparison untrimmed, got %q", got)
	}
}

func TestAuthService_IssueToken_ReplacesBinding(t *testing.T) {
	svc, _, mockTokens, _, _, mockClock := setupAuthService(t)

	var stored authdomain.AuthToken
	mockTokens.replaceFunc = func(ctx context.Context, token authdomain.AuthToken) error {
		stored = token
		return nil
	}

	token, err := svc.IssueToken(context.Background(), userdomain.User{ID: "user-123"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if token == "" {
		t.Fatal("expected non-empty token")
	}

	if stored.UserID != "user-123" {
		t.Errorf("expected binding to user-123, got %s", stored.UserID)
	}

	if stored.TokenHash == token {
		t.Error("raw token must not be persisted")
	}

	if stored.TokenHash != hashToken(token) {
		t.Error("stored hash must match the issued token")
	}

	if !stored.CreatedAt.Equal(mockClock.Now()) {
		t.Errorf("expected creation time %v, got %v", mockClock.Now(), stored.CreatedAt)
	}
}

func TestAuthService_ResolveToken_Success(t *testing.T) {
	svc, mockUsers, mockTokens, _, _, _ := setupAuthService(t)

	raw := "deadbeef"

	mockTokens.findByTokenHashFunc = func(ctx context.Context, hash string) (authdomain.AuthToken, error) {
		if hash != hashToken(raw) {
			t.Errorf("expected lookup by token hash, got %s", hash)
		}
		return authdomain.AuthToken{ID: "tok-1", UserID: "user-123", TokenHash: hash}, nil
	}

	mockUsers.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		if id != "user-123" {
			t.Errorf("expected lookup for user-123, got %s", id)
		}
		return userdomain.User{ID: id, Email: "a@x.com"}, nil
	}

	user, err := svc.ResolveToken(context.Background(), raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if user.Email != "a@x.com" {
		t.Errorf("expected resolved user a@x.com, got %s", user.Email)
	}
}

func TestAuthService_ResolveToken_Rejections(t *testing.T) {
	testCases := []struct {
		name  string
		token string
		setup func(users *mockUserRepo, tokens *mockTokenRepo)
	}{
		{
			name:  "empty token",
			token: "",
			setup: func(users *mockUserRepo, tokens *mockTokenRepo) {},
		},
		{
			name:  "unknown token",
			token: "garbage",
			setup: func(users *mockUserRepo, tokens *mockTokenRepo) {},
		},
		{
			name:  "bound user missing",
			token: "orphaned",
			setup: func(users *mockUserRepo, tokens *mockTokenRepo) {
				tokens.findByTokenHashFunc = func(ctx context.Context, hash string) (authdomain.AuthToken, error) {
					return authdomain.AuthToken{ID: "tok-1", UserID: "gone"}, nil
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mockUsers, mockTokens, _, _, _ := setupAuthService(t)
			tc.setup(mockUsers, mockTokens)

			_, err := svc.ResolveToken(context.Background(), tc.token)
			if err == nil {
				t.Fatal("expected error")
			}

			de, ok := commonerrors.AsDomainError(err)
			if !ok || de.Code() != "UNAUTHORIZED" {
				t.Errorf("expected UNAUTHORIZED error, got %v", err)
			}

			if de.HTTPStatus() != 401 {
				t.Errorf("expected status 401, got %d", de.HTTPStatus())
			}
		})
	}
}
