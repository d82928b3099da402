package report

import (
	"fmt"
	"strings"
	"time"
)

// ParseMonth parses the "MM.yyyy" month selector used by the shell and the
// HTTP API. The month may be written with or without the leading zero.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("1.2006", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected MM.yyyy", s)
	}

	return t.Year(), t.Month(), nil
}
