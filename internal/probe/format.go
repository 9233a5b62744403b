package probe

import (
	"strconv"
	"strings"
)

// Precision is the number of decimals printed for each component.
const Precision = 6

// FormatComplex renders w as "re + im i" or "re - im i" with Precision
// decimals. Components that round to zero print without a sign.
func FormatComplex(w complex128) string {
	re := formatComponent(real(w))
	im := formatComponent(imag(w))
	sign := " + "
	if rest, ok := strings.CutPrefix(im, "-"); ok {
		sign = " - "
		im = rest
	}
	return re + sign + im + "i"
}

func formatComponent(v float64) string {
	s := strconv.FormatFloat(v, 'f', Precision, 64)
	if rest, ok := strings.CutPrefix(s, "-"); ok && strings.Trim(rest, "0.") == "" {
		return rest
	}
	return s
}
