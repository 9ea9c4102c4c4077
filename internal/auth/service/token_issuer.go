package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	authdomain "github.com/recipevault/backend/internal/auth/domain"
	authrepo "github.com/recipevault/backend/internal/auth/repository"
	"github.com/recipevault/backend/internal/common/clock"
	"github.com/recipevault/backend/internal/common/constants"
	commoncrypto "github.com/recipevault/backend/internal/common/crypto"
	userdomain "github.com/recipevault/backend/internal/user/domain"
)

// TokenIssuer mints opaque bearer tokens. The raw token goes back to the
// caller; only its SHA-256 hash is stored, replacing any prior token for the
// same user.
type TokenIssuer struct {
	tokenRepo   authrepo.TokenRepository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
}

func NewTokenIssuer(
	tokenRepo authrepo.TokenRepository,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		tokenRepo:   tokenRepo,
		idGenerator: idGenerator,
		clock:       clk,
	}
}

func (ti *TokenIssuer) Issue(ctx context.Context, user userdomain.User) (string, error) {
	rawToken, err := generateToken()
	if err != nil {
		return "", err
	}

	id, err := ti.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	stored := authdomain.AuthToken{
		ID:        id,
		TokenHash: hashToken(rawToken),
		UserID:    string(user.ID),
		CreatedAt: ti.clock.Now(),
	}

	if err := ti.tokenRepo.Replace(ctx, stored); err != nil {
		return "", err
	}

	incrementAuthTokensIssued()

	return rawToken, nil
}

func generateToken() (string, error) {
	b := make([]byte, constants.AuthTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
