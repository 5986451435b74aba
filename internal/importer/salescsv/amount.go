package salescsv

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a money amount, tolerating thousands separators.
// Format examples: "2.50", "120", "12,500.00" -> 12500.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	return decimal.NewFromString(clean)
}
