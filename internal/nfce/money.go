package nfce

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonAmount = regexp.MustCompile(`[^\d.,-]`)

// ParseBRL normalizes a Brazilian currency string to a decimal amount.
//
// The usual form is thousands-dot plus decimal-comma ("1.234,56"). Stray
// US-style input does show up in pasted receipts, so the last separator
// decides: a final "." or "," followed by exactly two digits is the decimal
// separator and every other separator is a thousands mark.
//
//	"1.234,56" -> 1234.56
//	"9,90"     -> 9.90
//	"5.99"     -> 5.99
//	"1.234"    -> 1234
//
// Unparseable input yields zero.
func ParseBRL(s string) decimal.Decimal {
	cleaned := nonAmount.ReplaceAllString(s, "")
	if cleaned == "" {
		return decimal.Zero
	}

	lastSep := strings.LastIndexAny(cleaned, ".,")
	decimalSep := false
	if lastSep >= 0 && len(cleaned)-lastSep-1 == 2 {
		decimalSep = true
	}

	var b strings.Builder
	for i, r := range cleaned {
		switch r {
		case '.', ',':
			if decimalSep && i == lastSep {
				b.WriteByte('.')
			}
		default:
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

var nonQty = regexp.MustCompile(`[^\d.-]`)

// ParseQty normalizes a quantity string ("0,754" -> 0.754, "1.0000" -> 1).
// Quantities use a plain decimal comma, never thousands separators. Missing
// or non-positive input defaults to 1.
func ParseQty(s string) decimal.Decimal {
	one := decimal.NewFromInt(1)
	cleaned := nonQty.ReplaceAllString(strings.ReplaceAll(s, ",", "."), "")
	if cleaned == "" {
		return one
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.Sign() <= 0 {
		return one
	}
	return d
}
