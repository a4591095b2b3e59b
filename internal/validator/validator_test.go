package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN MEMBER"`
}

func TestValidate_MissingFieldsMessage(t *testing.T) {
	v := New()

	err := v.Validate(&samplePayload{})
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)

	// Field names come from the json tags and the list is sorted.
	assert.Equal(t, []string{"email", "name", "password"}, vErr.MissingFields())
	assert.Equal(t, "Missing required fields: email, name, password", vErr.Message())
}

func TestValidate_TagFailuresWithoutMissing(t *testing.T) {
	v := New()

	err := v.Validate(&samplePayload{
		Name:     "Someone",
		Email:    "not-an-email",
		Password: "short",
		Role:     "SUPERUSER",
	})
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)

	assert.Empty(t, vErr.MissingFields())
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.Equal(t, "Must be one of: ADMIN, MEMBER", vErr.Errors["role"])
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&samplePayload{
		Name:     "Someone",
		Email:    "someone@example.com",
		Password: "long_enough_password",
		Role:     "MEMBER",
	})
	assert.NoError(t, err)
}
