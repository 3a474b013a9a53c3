// Package format holds parsing helpers for user-entered item fields.
package format

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var nonPrice = regexp.MustCompile(`[^0-9.]`)

// ToCents parses a user-entered price string like "24.99" or "$1,299.00"
// into cents. Returns nil when the input is empty or not a number.
func ToCents(v string) *int64 {
	cleaned := nonPrice.ReplaceAllString(v, "")
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return nil
	}
	cents := int64(math.Round(n * 100))
	return &cents
}

// NormalizeURL turns a raw user-entered link into an absolute URL, defaulting
// to https when no scheme is given. Returns nil for blank or unparsable input.
func NormalizeURL(v string) *string {
	raw := strings.TrimSpace(v)
	if raw == "" {
		return nil
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}
	s := u.String()
	return &s
}

// USD renders cents as a dollar string, e.g. 2499 -> "$24.99".
func USD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
