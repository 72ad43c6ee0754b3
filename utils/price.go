package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParsePriceCents converts a display price like "£28,995" or "$45.00" into
// minor currency units. Every character except digits and the decimal point
// is stripped, the remainder is read as a decimal amount and rounded to the
// nearest cent. A string with no digits yields 0.
func ParsePriceCents(display string) int64 {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(amount * 100))
}

// SplitSubtotal divides a subtotal into platform fee and seller payout using
// a fee expressed in basis points. The division floors, so fee + payout
// always equals the subtotal exactly.
func SplitSubtotal(subtotalCents, feeBps int64) (feeCents, payoutCents int64) {
	if subtotalCents <= 0 || feeBps <= 0 {
		return 0, subtotalCents
	}
	feeCents = subtotalCents * feeBps / 10000
	return feeCents, subtotalCents - feeCents
}
