package custom_err

import "errors"

var (
	// Session errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid or malformed token")
	ErrNoSession    = errors.New("not authenticated")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidAmount   = errors.New("invalid amount")

	// Conversion errors
	ErrEmptyCatalog       = errors.New("currency catalog is empty")
	ErrConversionInFlight = errors.New("conversion already in progress")

	// Transport errors
	ErrTimeout       = errors.New("request timed out")
	ErrServerMessage = errors.New("server reported an error")
)
