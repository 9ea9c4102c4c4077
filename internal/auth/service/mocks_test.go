package service

import (
	"context"

	authdomain "github.com/recipevault/backend/internal/auth/domain"
	authrepo "github.com/recipevault/backend/internal/auth/repository"
	userdomain "github.com/recipevault/backend/internal/user/domain"
	userrepo "github.com/recipevault/backend/internal/user/repository"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	updateFunc      func(ctx context.Context, user userdomain.User) error
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user userdomain.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return nil
}

type mockTokenRepo struct {
	replaceFunc         func(ctx context.Context, token authdomain.AuthToken) error
	findByTokenHashFunc func(ctx context.Context, hash string) (authdomain.AuthToken, error)
}

func (m *mockTokenRepo) Replace(ctx context.Context, token authdomain.AuthToken) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, token)
	}
	return nil
}

func (m *mockTokenRepo) FindByTokenHash(ctx context.Context, hash string) (authdomain.AuthToken, error) {
	if m.findByTokenHashFunc != nil {
		return m.findByTokenHashFunc(ctx, hash)
	}
	return authdomain.AuthToken{}, authrepo.ErrTokenNotFound
}

type mockHasher struct {
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "test-id-123", nil
}
