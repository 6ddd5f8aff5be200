package autherrors

import (
	"net/http"

	"github.com/AleBonatti/timetjek.test/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.NewValidation(
		"personnummer",
		"The provided credentials are incorrect.",
	)
	ErrWrongCurrentPassword = apperror.NewValidation(
		"current_password",
		"The current password is incorrect.",
	)
	ErrEmailTaken = apperror.NewValidation(
		"email",
		"The email has already been taken.",
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not generate token",
		http.StatusInternalServerError,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
)
