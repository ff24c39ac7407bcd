package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in getOperatorID
	"strconv" // strconv converts strings to numeric types
	"strings" // strings provides trimming helpers
	"time"    // time parses the supported date layouts

	"github.com/labstack/echo/v4" // echo defines request context types
)

// getOperatorID extracts the operator_id from echo.Context and converts it to uint64
func getOperatorID(c echo.Context) (uint64, error) {
	v := c.Get("operator_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid operator_id in context")
}

func trimmed(s string) string { return strings.TrimSpace(s) }

// padCentreCode left-pads a numeric centre code to four digits.
// Non-numeric codes are passed through trimmed.
func padCentreCode(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if _, err := strconv.Atoi(s); err != nil {
		return s
	}
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// dateLayouts lists the input formats accepted for venue dates. The
// canonical storage form is dd-mm-yyyy.
var dateLayouts = []string{"02-01-2006", "2006-01-02", "02/01/2006"}

// normalizeDate converts a date string to dd-mm-yyyy. Unparseable
// values are returned trimmed so the operator sees what they typed.
func normalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02-01-2006")
		}
	}
	return s
}
