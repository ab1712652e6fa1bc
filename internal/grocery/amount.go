package grocery

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingQuantity = regexp.MustCompile(`^(\d+/\d+|\d+(?:\.\d+)?|\.\d+)`)
	leadingFraction = regexp.MustCompile(`^\d+/\d+`)
)

// ParseAmount splits a free-text amount such as "2 lbs" or "1/2 cup" into a
// quantity and a unit. Amounts without a usable leading number, including
// mixed numbers like "1 1/2 cups", yield a quantity of 1 with the whole
// trimmed text as the unit.
func ParseAmount(amount string) (float64, string) {
	text := strings.TrimSpace(amount)
	fallback := func() (float64, string) { return 1, text }

	token := leadingQuantity.FindString(text)
	if token == "" {
		return fallback()
	}

	rest := text[len(token):]
	if rest != "" && strings.ContainsRune("0123456789./", rune(rest[0])) {
		return fallback()
	}
	unit := strings.TrimSpace(rest)
	if leadingFraction.MatchString(unit) {
		return fallback()
	}

	quantity, ok := parseQuantity(token)
	if !ok {
		return fallback()
	}
	return quantity, unit
}

func parseQuantity(token string) (float64, bool) {
	if num, den, found := strings.Cut(token, "/"); found {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	q, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsInf(q, 0) {
		return 0, false
	}
	return q, true
}

// FormatQuantity renders a quantity rounded to two decimal places without
// trailing zeros. Quantities beyond 1e15 carry no fractional precision and
// are rendered as-is, since scaling them by 100 can overflow.
func FormatQuantity(q float64) string {
	if math.Abs(q) > 1e15 {
		return strconv.FormatFloat(q, 'f', -1, 64)
	}
	rounded := math.Round(q*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func formatAmount(quantity float64, unit string) string {
	if unit == "" {
		return FormatQuantity(quantity)
	}
	return FormatQuantity(quantity) + " " + unit
}
