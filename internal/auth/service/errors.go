package service

import (
	"net/http"

	commonerrors "github.com/recipevault/backend/internal/common/errors"
)

var (
	// ErrInvalidCredentials deliberately carries one message for both an
	// unknown email and a wrong password.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryAuth,
		http.StatusBadRequest,
		"unable to authenticate with provided credentials",
	)

	ErrUnauthorized = commonerrors.NewDomainError(
		"UNAUTHORIZED",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"authentication credentials were not provided or are invalid",
	)
)
