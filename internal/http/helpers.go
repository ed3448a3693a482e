package http

import (
	"strconv"
	"strings"
)

// formatWon formats an amount as a Korean won string with thousands
// grouping, e.g. "₩1,234,567". Fractions are dropped: won has no
// sub-unit in practice.
func formatWon(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(int64(amount+0.5), 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteRune('₩')
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
