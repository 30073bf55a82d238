package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/models"
)

// AssertAppError fails unless err is an *AppError carrying code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("expected AppError %q, got nil", code)
	case !errors.As(err, &appErr):
		t.Fatalf("expected *AppError %q, got %T: %v", code, err, err)
	case appErr.Code != code:
		t.Errorf("expected error code %q, got %q (message: %s)", code, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test immediately on err.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimal compares a decimal against its expected string form, so
// "1005" and "1005.00" are equal.
func AssertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

// AssertSymbols checks holdings are listed in exactly the given order.
func AssertSymbols(t *testing.T, holdings []models.Holding, want ...string) {
	t.Helper()
	if len(holdings) != len(want) {
		t.Fatalf("expected %d holdings %v, got %d", len(want), want, len(holdings))
	}
	for i, h := range holdings {
		if h.Symbol != want[i] {
			t.Errorf("holding %d: expected %s, got %s", i, want[i], h.Symbol)
		}
	}
}
