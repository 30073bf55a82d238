// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NSE/BSE tickers: letters, digits and the few punctuation marks real
// symbols use (M&M, BAJAJ-AUTO, ^NSEI).
var stockSymbolRegex = regexp.MustCompile(`^[A-Za-z0-9&^.\-]{1,20}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("stock_symbol", validateStockSymbol)
		_ = v.RegisterValidation("recommendation", validateRecommendation)
	}
}

// IsStockSymbol reports whether s looks like an exchange ticker.
func IsStockSymbol(s string) bool {
	return stockSymbolRegex.MatchString(s)
}

func validateStockSymbol(fl validator.FieldLevel) bool {
	return IsStockSymbol(fl.Field().String())
}

func validateRecommendation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "hold", "sell":
		return true
	}
	return false
}
