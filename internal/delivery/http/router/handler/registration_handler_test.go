package handler

import (
	"testing"

	"bazaar/internal/delivery/http/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIntakeRequest() SubmitRegistrationRequest {
	return SubmitRegistrationRequest{
		FullName:        "Asha Patel",
		Email:           "asha@spicebazaar.example",
		Phone:           "+919800000001",
		Password:        "s3cure-pass",
		CompanyName:     "Spice Bazaar",
		TermsAccepted:   true,
		PrivacyAccepted: true,
	}
}

func TestSubmitRegistrationRequest_Validation(t *testing.T) {
	v := validator.New()

	require.NoError(t, v.Validate(validIntakeRequest()))

	missingPhone := validIntakeRequest()
	missingPhone.Phone = ""
	assert.Error(t, v.Validate(missingPhone))

	missingEmail := validIntakeRequest()
	missingEmail.Email = ""
	assert.Error(t, v.Validate(missingEmail))

	shortPassword := validIntakeRequest()
	shortPassword.Password = "short"
	assert.Error(t, v.Validate(shortPassword))
}
