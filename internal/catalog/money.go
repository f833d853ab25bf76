package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is an amount in euro cents.
type Cents int64

func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s€%d.%02d", sign, c/100, c%100)
}

// ParseAmount parses a decimal price string ("299", "24.90") into cents.
// At most two fractional digits are accepted.
func ParseAmount(s string) (Cents, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, hasFrac := strings.Cut(in, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, fmt.Errorf("malformed amount %q", s)
	}

	w, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}

	var f uint64
	if hasFrac {
		f, err = strconv.ParseUint(frac, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("malformed amount %q", s)
		}
		if len(frac) == 1 {
			f *= 10
		}
	}
	return Cents(w*100 + f), nil
}
