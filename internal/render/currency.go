package render

import (
	"strings"

	"github.com/mmynk/ratecraft/internal/models"
)

// Currency is a selectable currency symbol.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// Currencies is the built-in currency picker list. Any other symbol may be
// typed in freely.
var Currencies = []Currency{
	{Code: "INR", Symbol: "₹", Label: "INR — Indian Rupee"},
	{Code: "USD", Symbol: "$", Label: "USD — US Dollar"},
	{Code: "EUR", Symbol: "€", Label: "EUR — Euro"},
	{Code: "GBP", Symbol: "£", Label: "GBP — British Pound"},
	{Code: "JPY", Symbol: "¥", Label: "JPY — Japanese Yen"},
	{Code: "AUD", Symbol: "A$", Label: "AUD — Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Label: "CAD — Canadian Dollar"},
}

// CurrencySafe returns symbol, or the default symbol when it is blank.
func CurrencySafe(symbol string) string {
	if s := strings.TrimSpace(symbol); s != "" {
		return s
	}
	return models.DefaultCurrency
}
