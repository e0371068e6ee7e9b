// Package validation checks user supplied input before it reaches a service.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"gallery/internal/models"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minPasswordLen    = 12
	maxPasswordLen    = 128
	maxEmailLen       = 254
	maxDisplayNameLen = 60
	maxTitleLen       = 200
	maxDescriptionLen = 5000
)

var (
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// Registration is the sign up payload.
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Validate implements validation.Validatable.
func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules()...),
		validation.Field(&r.Password, validation.Required, validation.By(passwordStrength)),
		validation.Field(&r.DisplayName, validation.Required, validation.Length(1, maxDisplayNameLen)),
	)
}

// Credentials is the login payload. Only presence is checked so that a
// weak legacy password still reaches the hash comparison.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// PhotoDetails holds the editable metadata of a photo.
type PhotoDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (p PhotoDetails) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, maxTitleLen)),
		validation.Field(&p.Description, validation.Length(0, maxDescriptionLen)),
		validation.Field(&p.ImageURL, is.URL),
	)
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	return validation.Validate(password, validation.Required, validation.By(passwordStrength))
}

// ValidateEmail checks email format and length.
func ValidateEmail(email string) error {
	return validation.Validate(email, emailRules()...)
}

// ValidateVisibility accepts only public and private.
func ValidateVisibility(v models.Visibility) error {
	return validation.Validate(string(v),
		validation.Required,
		validation.In(string(models.VisibilityPublic), string(models.VisibilityPrivate)).
			Error("must be either public or private"),
	)
}

// AsAppError converts a validation failure into a VALIDATION_ERROR.
func AsAppError(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return models.NewInternalError(err)
	}
	return models.NewValidationError(err.Error())
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(3, maxEmailLen),
		is.Email,
	}
}

func passwordStrength(value interface{}) error {
	password, _ := value.(string)
	if password == "" {
		return nil
	}
	if len(password) < minPasswordLen {
		return errors.New("must be at least 12 characters long")
	}
	if len(password) > maxPasswordLen {
		return errors.New("must not exceed 128 characters")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return errors.New("must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return errors.New("must contain at least one lowercase letter")
	}
	if !digitRegex.MatchString(password) {
		return errors.New("must contain at least one digit")
	}
	if !specialRegex.MatchString(password) {
		return errors.New("must contain at least one special character")
	}
	return nil
}
