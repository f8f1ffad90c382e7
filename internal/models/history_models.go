package models

import "time"

// ConversionRecord запись истории конвертаций на бэкенде
type ConversionRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	CurrencyOrigin  string    `json:"currencyOrigin"`
	ValueOrigin     float64   `json:"valueOrigin"`
	CurrencyDestiny string    `json:"currencyDestiny"`
	ValueDestiny    float64   `json:"valueDestiny"`
	TaxConversion   float64   `json:"taxConversion"`
	DateOperation   time.Time `json:"dateOperation"`
}

// JournalEntry локальная запись об успешной конвертации
type JournalEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	CurrencyOrigin  string    `json:"currencyOrigin"`
	CurrencyDestiny string    `json:"currencyDestiny"`
	Amount          string    `json:"amount"`
	Result          float64   `json:"result"`
	Timestamp       time.Time `json:"timestamp"`
}

// HistoryPage страница отфильтрованной истории
type HistoryPage struct {
	Records    []ConversionRecord
	Page       int
	TotalPages int
	TotalCount int
}
