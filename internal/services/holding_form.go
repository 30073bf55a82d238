package services

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "alphafusion/internal/errors"
)

// Validation messages shown inline by the add-stock dialog.
const (
	MsgSymbolRequired  = "Symbol is required"
	MsgNameRequired    = "Name is required"
	MsgInvalidPrice    = "Enter a valid price"
	MsgInvalidQuantity = "Enter a valid quantity (must be a positive integer)"
)

const maxQuantity = 1_000_000_000

// FormValue is a form field that arrives either as a JSON number or as a
// JSON string.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
	default:
		*v = FormValue(data)
	}
	return nil
}

// HoldingForm is the raw add-stock form.
type HoldingForm struct {
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Price    FormValue `json:"price" swaggertype:"string" example:"1543.20"`
	Quantity FormValue `json:"quantity" swaggertype:"string" example:"10"`
}

// HoldingInput is a validated, normalised add-stock form.
type HoldingInput struct {
	Symbol   string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Validate checks the form in field order and returns the first failure as
// an INVALID_INPUT error carrying the dialog message.
func (f HoldingForm) Validate() (HoldingInput, error) {
	symbol := strings.ToUpper(strings.TrimSpace(f.Symbol))
	if symbol == "" {
		return HoldingInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, MsgSymbolRequired)
	}
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return HoldingInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, MsgNameRequired)
	}
	price, ok := parsePrice(string(f.Price))
	if !ok {
		return HoldingInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, MsgInvalidPrice)
	}
	quantity, ok := parseQuantity(string(f.Quantity))
	if !ok {
		return HoldingInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, MsgInvalidQuantity)
	}
	return HoldingInput{Symbol: symbol, Name: name, Price: price, Quantity: quantity}, nil
}

// parsePrice accepts a finite positive number and rounds it to paise. A
// price that rounds to zero is rejected.
func parsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		d = decimal.NewFromFloat(f)
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseQuantity accepts a positive whole number, so "10" and "10.0" are
// both ten shares.
func parseQuantity(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f != math.Trunc(f) || f > maxQuantity {
		return 0, false
	}
	return int(f), true
}
