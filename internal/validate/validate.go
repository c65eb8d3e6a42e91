package validate

import (
	"math"
	"regexp"
	"strings"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ID validates a simple resource identifier (product ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Quantity normalizes a requested quantity to a whole number of units:
// floor, then clamp to a minimum of 1. A zero or missing quantity therefore
// means "one unit", never "drop the line".
func Quantity(q float64) int {
	n := int(math.Floor(q))
	if n < 1 {
		return 1
	}
	return n
}
