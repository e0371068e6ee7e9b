package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes exposed to API clients. Each one is a distinct outcome kind;
// Reason narrows a kind down when callers need to tell cases apart.
const (
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeNotFound        = "NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeUnauthenticated = "UNAUTHORIZED"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Reason  string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same code and reason.
// A target without a reason matches every error of its code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Code != t.Code {
		return false
	}
	return t.Reason == "" || e.Reason == t.Reason
}

// Reasons distinguishing outcomes that share a code.
const (
	ReasonOwnPhoto         = "OWN_PHOTO"
	ReasonNotPublic        = "NOT_PUBLIC"
	ReasonNotVisible       = "NOT_VISIBLE"
	ReasonNotOwner         = "NOT_OWNER"
	ReasonAlreadyLiked     = "ALREADY_LIKED"
	ReasonAlreadyFavorited = "ALREADY_FAVORITED"
	ReasonNotLiked         = "NOT_LIKED"
	ReasonNotFavorited     = "NOT_FAVORITED"
	ReasonEmailTaken       = "EMAIL_TAKEN"
)

// Sentinels usable as errors.Is targets.
var (
	ErrNotFound        = &AppError{Code: CodeNotFound, Message: "Resource not found"}
	ErrForbidden       = &AppError{Code: CodeForbidden, Message: "Forbidden"}
	ErrUnauthenticated = &AppError{Code: CodeUnauthenticated, Message: "Authentication required"}
	ErrConflict        = &AppError{Code: CodeConflict, Message: "Conflict"}
	ErrInvalidToken    = &AppError{Code: CodeInvalidToken, Message: "Invalid token"}
	ErrTokenExpired    = &AppError{Code: CodeTokenExpired, Message: "Token has expired"}

	ErrOwnPhoto         = &AppError{Code: CodeForbidden, Reason: ReasonOwnPhoto, Message: "You cannot like your own photo"}
	ErrPhotoNotPublic   = &AppError{Code: CodeForbidden, Reason: ReasonNotPublic, Message: "Only public photos can be liked"}
	ErrPhotoNotVisible  = &AppError{Code: CodeForbidden, Reason: ReasonNotVisible, Message: "You are not allowed to access this photo"}
	ErrNotPhotoOwner    = &AppError{Code: CodeForbidden, Reason: ReasonNotOwner, Message: "You can only modify your own photos"}
	ErrAlreadyLiked     = &AppError{Code: CodeConflict, Reason: ReasonAlreadyLiked, Message: "Photo already liked"}
	ErrAlreadyFavorited = &AppError{Code: CodeConflict, Reason: ReasonAlreadyFavorited, Message: "Photo already in favorites"}
	ErrNotLiked         = &AppError{Code: CodeNotFound, Reason: ReasonNotLiked, Message: "Photo is not liked"}
	ErrNotFavorited     = &AppError{Code: CodeNotFound, Reason: ReasonNotFavorited, Message: "Photo is not in favorites"}
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewConflictError(reason, message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Reason:  reason,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// CodeOf returns the AppError code carried by err, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// exposesDetails reports whether a wrapped cause may reach the client.
// Internal and token failures keep their cause in the logs.
func exposesDetails(code string) bool {
	switch code {
	case CodeInternal, CodeInvalidToken, CodeTokenExpired:
		return false
	}
	return true
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error:  appErr.Message,
			Code:   appErr.Code,
			Reason: appErr.Reason,
		}
		if appErr.Err != nil && exposesDetails(appErr.Code) {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
