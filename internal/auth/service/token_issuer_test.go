package service

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	authdomain "github.com/recipevault/backend/internal/auth/domain"
	"github.com/recipevault/backend/internal/common/clock"
	"github.com/recipevault/backend/internal/common/constants"
	userdomain "github.com/recipevault/backend/internal/user/domain"
)

func TestTokenIssuer_Issue_TokenIsOpaqueHex(t *testing.T) {
	mockTokens := &mockTokenRepo{}
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	issuer := NewTokenIssuer(mockTokens, idGen, mockClock)

	token, err := issuer.Issue(context.Background(), userdomain.User{ID: "user-123"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	decoded, err := hex.DecodeString(token)
	if err != nil {
		t.Fatalf("expected hex token, got %q: %v", token, err)
	}

	if len(decoded) != constants.AuthTokenSize {
		t.Errorf("expected %d random bytes, got %d", constants.AuthTokenSize, len(decoded))
	}
}

func TestTokenIssuer_Issue_TokensAreUnique(t *testing.T) {
	mockTokens := &mockTokenRepo{}
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	issuer := NewTokenIssuer(mockTokens, idGen, mockClock)

	first, err := issuer.Issue(context.Background(), userdomain.User{ID: "user-123"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second, err := issuer.Issue(context.Background(), userdomain.User{ID: "user-123"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Error("expected each issued token to be unique")
	}
}

func TestTokenIssuer_Issue_StoresHashOnly(t *testing.T) {
	var stored []authdomain.AuthToken
	mockTokens := &mockTokenRepo{
		replaceFunc: func(ctx context.Context, token authdomain.AuthToken) error {
			stored = append(stored, token)
			return nil
		},
	}
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	issuer := NewTokenIssuer(mockTokens, idGen, mockClock)

	token, err := issuer.Issue(context.Background(), userdomain.User{ID: "user-123"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(stored) != 1 {
		t.Fatalf("expected one stored binding, got %d", len(stored))
	}

	if stored[0].TokenHash == token {
		t.Error("raw token must not reach the repository")
	}

	if stored[0].TokenHash != hashToken(token) {
		t.Error("stored hash must match the issued token")
	}
}
