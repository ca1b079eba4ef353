package core

// convert.go turns price text into numbers.
//
// Prices in the list are written the way the shop displays them, with
// thousands separators ("1,200"). The text in the file is never rewritten;
// these helpers only derive comparison values from it.

import (
	"fmt"
	"strconv"
	"strings"
)

// CleanPrice removes thousands separators from a price cell.
func CleanPrice(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// ParsePrice parses a buy or sell price after removing commas.
//
// Surrounding whitespace, a leading sign, full-width digits and single
// underscores between digits ("1_000") are accepted. Values outside int64
// are rejected.
func ParsePrice(s string) (int64, error) {
	cleaned := strings.TrimSpace(CleanPrice(s))
	cleaned = strings.Map(foldDigit, cleaned)

	digits, ok := dropDigitSeparators(cleaned)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
	}
	return n, nil
}

// dropDigitSeparators removes underscores that sit between two digits.
// Any other underscore makes the text invalid.
func dropDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return strings.ReplaceAll(s, "_", ""), true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// foldDigit maps full-width digits to ASCII and leaves other runes alone.
func foldDigit(r rune) rune {
	if r >= '０' && r <= '９' {
		return r - '０' + '0'
	}
	return r
}

// NormalizePriceQuery folds full-width digits to ASCII and drops every
// other character, the same way the search box treats typed input.
func NormalizePriceQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		r = foldDigit(r)
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
