package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Quality  string `validate:"omitempty,oneof=free 720p 1080p"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		Email:    "user@example.com",
		Password: "correcthorse",
		Quality:  "1080p",
	})
	assert.NoError(t, err)
}

func TestValidateStructReportsEveryField(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		Email:    "not-an-email",
		Password: "short",
	})

	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "email must be a valid email")
		assert.Contains(t, err.Error(), "password must be at least 8")
	}
}

func TestValidateStructOneof(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		Email:    "user@example.com",
		Password: "correcthorse",
		Quality:  "4k",
	})

	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "quality must be one of: free 720p 1080p")
	}
}
