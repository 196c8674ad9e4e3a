package resolve

import (
	"regexp"
	"strings"

	"github.com/sig-0/fipeval/types"
)

const plateLength = 7

var fipeCodeRegex = regexp.MustCompile(`^[0-9]{6}-[0-9]$`)

// NormalizePlate upper-cases the raw plate, strips anything that is not
// A-Z or 0-9, and truncates it to 7 characters.
// Plates that end up shorter are rejected
func NormalizePlate(raw string) (types.PlateQuery, error) {
	var b strings.Builder

	for _, r := range strings.ToUpper(raw) {
		if b.Len() == plateLength {
			break
		}

		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	if b.Len() != plateLength {
		return "", ErrInvalidPlate
	}

	return types.PlateQuery(b.String()), nil
}

// ParseFipeCode validates the raw fipe code (######-#)
func ParseFipeCode(raw string) (types.FipeCode, error) {
	s := strings.TrimSpace(raw)
	if !fipeCodeRegex.MatchString(s) {
		return "", ErrInvalidFipeCode
	}

	return types.FipeCode(s), nil
}
