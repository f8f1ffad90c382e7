package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gw-converter-cli/internal/custom_err"
)

func TestSignupRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  SignupRequest{Email: "user@example.com", Password: "123456", Name: "User"},
		},
		{
			name:    "password of five characters",
			req:     SignupRequest{Email: "user@example.com", Password: "12345", Name: "User"},
			wantErr: custom_err.ErrInvalidInput,
		},
		{
			name:    "missing email",
			req:     SignupRequest{Password: "123456", Name: "User"},
			wantErr: custom_err.ErrInvalidInput,
		},
		{
			name:    "malformed email",
			req:     SignupRequest{Email: "user@", Password: "123456", Name: "User"},
			wantErr: custom_err.ErrInvalidInput,
		},
		{
			name:    "missing name",
			req:     SignupRequest{Email: "user@example.com", Password: "123456"},
			wantErr: custom_err.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	valid := LoginRequest{Email: "user@example.com", Password: "x"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "user@example.com"}
	err := missing.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, custom_err.ErrInvalidInput)
	assert.Contains(t, err.Error(), "password is required")
}

func TestConversionRequest_Validate(t *testing.T) {
	valid := ConversionRequest{CurrencyOrigin: "EUR", CurrencyDestiny: "USD", Amount: "10.50"}
	assert.NoError(t, valid.Validate())

	zero := ConversionRequest{CurrencyOrigin: "EUR", CurrencyDestiny: "USD", Amount: "0"}
	assert.NoError(t, zero.Validate())

	negative := ConversionRequest{CurrencyOrigin: "EUR", CurrencyDestiny: "USD", Amount: "-1"}
	assert.ErrorIs(t, negative.Validate(), custom_err.ErrInvalidAmount)

	garbage := ConversionRequest{CurrencyOrigin: "EUR", CurrencyDestiny: "USD", Amount: "ten"}
	assert.ErrorIs(t, garbage.Validate(), custom_err.ErrInvalidAmount)

	missing := ConversionRequest{CurrencyDestiny: "USD", Amount: "1"}
	assert.ErrorIs(t, missing.Validate(), custom_err.ErrInvalidInput)
}

func TestCurrencyType_DisplaySymbol(t *testing.T) {
	fromBackend := CurrencyType{Currency: "EUR", Symbol: "EUR€"}
	assert.Equal(t, "EUR€", fromBackend.DisplaySymbol())

	fromLocalMap := CurrencyType{Currency: "BRL"}
	assert.Equal(t, "R$", fromLocalMap.DisplaySymbol())

	unknown := CurrencyType{Currency: "XYZ"}
	assert.Equal(t, "", unknown.DisplaySymbol())
}
