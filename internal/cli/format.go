// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with two decimals, thousands separators and the currency code.
// e.g., 1234.5 USD -> "1,234.50 USD"
func FormatMoney(amount decimal.Decimal, currency string) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	out := sign + groupThousands(whole) + "." + frac
	if currency != "" {
		out += " " + currency
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent formats a ratio (1.0 == 100%) as a percentage.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatPercentValue formats a value already expressed in percent (0-100).
func FormatPercentValue(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
