package domain

import "errors"

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetMe          = "user retrieved successfully"
	MessageSuccessForgotPassword = "password reset email sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "access denied"
	MessageFailedGetMe          = "failed to retrieve user"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrCredentialsInvalid = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

type (
	RegisterUserRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role" validate:"required,oneof=admin driver"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}
)
