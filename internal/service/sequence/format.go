package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"steelestim/internal/storage"
)

// FormatNumber renders a counter value under the series configuration.
//
// With a custom format string, each known placeholder is substituted exactly
// once, left to right; anything else, including an unknown placeholder, is
// left as-is so a preview is always producible.
//
// Without one, the identifier is assembled as
// [Prefix]-[CompanyCode]-[Year]-[Month]-Number-[Suffix], keeping only the
// segments whose flag is on and skipping empty segments. A trailing dash on
// the prefix and a leading dash on the suffix fold into the joiner, so a
// prefix stored as "PRJ-" still yields "PRJ-0008" and not "PRJ--0008".
func FormatNumber(s storage.NumberSeries, number int, t time.Time) string {
	padded := pad(number, s.MinDigits)

	if s.Format != "" {
		result := s.Format
		result = strings.Replace(result, "{Prefix}", s.Prefix, 1)
		result = strings.Replace(result, "{Suffix}", s.Suffix, 1)
		result = strings.Replace(result, "{Number}", padded, 1)
		result = strings.Replace(result, "{Year}", strconv.Itoa(t.Year()), 1)
		result = strings.Replace(result, "{YY}", fmt.Sprintf("%02d", t.Year()%100), 1)
		result = strings.Replace(result, "{Month}", fmt.Sprintf("%02d", int(t.Month())), 1)
		result = strings.Replace(result, "{Day}", fmt.Sprintf("%02d", t.Day()), 1)
		return result
	}

	var parts []string

	if prefix := strings.TrimSuffix(s.Prefix, "-"); prefix != "" {
		parts = append(parts, prefix)
	}
	if s.IncludeCompanyCode && s.CompanyCode != "" {
		parts = append(parts, s.CompanyCode)
	}
	if s.IncludeYear {
		parts = append(parts, strconv.Itoa(t.Year()))
	}
	if s.IncludeMonth {
		parts = append(parts, fmt.Sprintf("%02d", int(t.Month())))
	}

	parts = append(parts, padded)

	if suffix := strings.TrimPrefix(s.Suffix, "-"); suffix != "" {
		parts = append(parts, suffix)
	}

	return strings.Join(parts, "-")
}

func pad(number, minDigits int) string {
	if minDigits <= 0 {
		return strconv.Itoa(number)
	}
	return fmt.Sprintf("%0*d", minDigits, number)
}
