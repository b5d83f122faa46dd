package rank

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	moneyCleaner = strings.NewReplacer("£", "", "$", "", "€", "", ",", "")
	moneyRegex   = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*([kmb])?`)
)

// ExtractMonetaryValue parses a free-text monetary string into a numeric
// value. Currency symbols and thousands separators are stripped, then the
// first numeric token wins, honouring a single-letter magnitude suffix
// (k, m, b). Ranged strings like "£25K - £1M" therefore yield the first
// token only (25000); this mirrors the tuned upstream behaviour and is a
// documented simplification, not a range parse.
//
// The second return value is false when no numeric token exists; callers
// must treat that as "no value", never as zero.
func ExtractMonetaryValue(s string) (float64, bool) {
	cleaned := moneyCleaner.Replace(strings.ToLower(s))

	m := moneyRegex.FindStringSubmatch(cleaned)
	if m == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	switch m[2] {
	case "k":
		value *= 1e3
	case "m":
		value *= 1e6
	case "b":
		value *= 1e9
	}
	return value, true
}
