package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gw-converter-cli/internal/custom_err"
)

// CurrencyType валюта из каталога бэкенда.
// Symbol и Country необязательные: пустая строка означает, что бэкенд их не прислал.
type CurrencyType struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Symbol   string `json:"symbol,omitempty"`
	Country  string `json:"country,omitempty"`
}

// ConversionRequest запрос на конвертацию валют
type ConversionRequest struct {
	CurrencyOrigin  string `json:"currencyOrigin" validate:"required"`
	CurrencyDestiny string `json:"currencyDestiny" validate:"required"`
	Amount          string `json:"amount" validate:"required"`
}

// ConversionResult результат конвертации
type ConversionResult struct {
	TransactionID string  `json:"transactionId"`
	ValueOrigin   float64 `json:"valueOrigin"`
	ValueDestiny  float64 `json:"valueDestiny"`
}

// currencySymbols локальные символы для отображения, когда бэкенд их не присылает
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"BRL": "R$",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "Fr",
}

// DisplaySymbol возвращает символ бэкенда, затем локальный, иначе пустую строку
func (c CurrencyType) DisplaySymbol() string {
	if c.Symbol != "" {
		return c.Symbol
	}
	return currencySymbols[c.Currency]
}

func (r ConversionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", custom_err.ErrInvalidInput, validationMessage(err))
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return fmt.Errorf("%w: %q is not a decimal number", custom_err.ErrInvalidAmount, r.Amount)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", custom_err.ErrInvalidAmount)
	}
	return nil
}
