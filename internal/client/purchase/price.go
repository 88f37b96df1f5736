package purchase

import (
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// ParsePrice reads a display price such as "$1,500" as an integer amount.
// Surrounding space, one leading "$" and thousands separators are ignored,
// then the leading integer is taken, so "$500.50" is 500. It reports false,
// with 0, when no digits lead the remaining text or the amount overflows.
func ParsePrice(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	var n int64
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > (math.MaxInt64-9)/10 {
			return 0, false
		}
		n = n*10 + int64(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// Total is the vehicle price plus every service price. In permissive mode an
// unparsable service price counts as 0. In strict mode it is rejected with
// ErrInvalidPrice, as is a negative price.
func Total(vehiclePrice int64, services []models.Service, strict bool) (int64, error) {
	total := vehiclePrice
	for _, s := range services {
		p, ok := ParsePrice(s.Price)
		if strict && (!ok || p < 0) {
			return 0, fmt.Errorf("%w: service %d (%q) has price %q", ErrInvalidPrice, s.ID, s.Name, s.Price)
		}
		total += p
	}
	return total, nil
}
