package validation

import (
	"strings"
	"testing"

	"gallery/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "SecurePass12!@", false},
		{"Exactly Min Length", "Abcdefghij1!", false},
		{"Exactly Max Length", "A" + strings.Repeat("b", 125) + "1!", false},
		{"Empty", "", true},
		{"Too Short", "Small1!", true},
		{"Too Long", "A" + strings.Repeat("b", 126) + "1!", true},
		{"No Upper", "securepass12!", true},
		{"No Lower", "SECUREPASS12!", true},
		{"No Digit", "SecurePass!!", true},
		{"No Special", "SecurePass123", true},
		{"Unicode Characters", "ÅngstromPass12!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "test@example.com", false},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "user@", true},
		{"Empty", "", true},
		{"Too Long", strings.Repeat("a", 250) + "@b.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVisibility(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateVisibility(models.VisibilityPublic))
	assert.NoError(t, ValidateVisibility(models.VisibilityPrivate))
	assert.Error(t, ValidateVisibility("friends"))
	assert.Error(t, ValidateVisibility(""))
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	valid := Registration{Email: "alice@example.com", Password: "SecurePass12!@", DisplayName: "Alice"}
	assert.NoError(t, valid.Validate())

	bad := Registration{Email: "alice", Password: "short", DisplayName: ""}
	err := bad.Validate()
	if assert.Error(t, err) {
		msg := err.Error()
		assert.Contains(t, msg, "email")
		assert.Contains(t, msg, "password")
		assert.Contains(t, msg, "display_name")
	}
}

func TestCredentials(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Credentials{Email: "a@example.com", Password: "x"}.Validate())
	assert.Error(t, Credentials{Email: "a@example.com"}.Validate())
}

func TestPhotoDetails(t *testing.T) {
	t.Parallel()
	assert.NoError(t, PhotoDetails{Title: "Harbor", ImageURL: "https://cdn.example.com/1.jpg"}.Validate())
	assert.NoError(t, PhotoDetails{Title: "No image yet"}.Validate())
	assert.Error(t, PhotoDetails{Title: ""}.Validate())
	assert.Error(t, PhotoDetails{Title: strings.Repeat("t", 201)}.Validate())
	assert.Error(t, PhotoDetails{Title: "Harbor", ImageURL: "not a url"}.Validate())
}

func TestAsAppError(t *testing.T) {
	t.Parallel()
	assert.NoError(t, AsAppError(nil))

	err := AsAppError(Registration{}.Validate())
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}
