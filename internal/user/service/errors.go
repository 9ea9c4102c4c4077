package service

import (
	"net/http"

	commonerrors "github.com/recipevault/backend/internal/common/errors"
)

var (
	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"user with this email already exists",
	)
)
