package auth

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/arcanum-go/apperror"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the body returned by register and login; the session
// credential itself travels only in the cookie.
type AuthResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// fieldMessage renders one validator failure as a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return "is invalid"
	}
}

// validateStruct runs the shared validator and converts failures into a
// ValidationError carrying per-field messages.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInternalError("request validation failed", err)
	}
	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return apperror.NewValidationError("invalid input", fields)
}
