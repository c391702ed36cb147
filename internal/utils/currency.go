package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a value the way the staff reads it on WhatsApp:
// "R$ 1.234,56". Dot for thousands, comma for cents, always two cents digits.
func FormatBRL(value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
