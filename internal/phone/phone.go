// Package phone validates local phone numbers against per-country digit lengths.
package phone

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCountryCode is applied when a record omits countryCode.
const DefaultCountryCode = "+91"

// Rule is the accepted digit length range for one country code.
type Rule struct {
	Min  int
	Max  int
	Name string
}

// Numbers for codes outside the table must be E.164-sized.
const (
	fallbackMin = 7
	fallbackMax = 15
)

var rules = map[string]Rule{
	"+91":  {Min: 10, Max: 10, Name: "India"},
	"+1":   {Min: 10, Max: 10, Name: "USA/Canada"},
	"+44":  {Min: 9, Max: 10, Name: "UK"},
	"+61":  {Min: 9, Max: 9, Name: "Australia"},
	"+81":  {Min: 9, Max: 10, Name: "Japan"},
	"+971": {Min: 9, Max: 9, Name: "UAE"},
	"+65":  {Min: 8, Max: 8, Name: "Singapore"},
	"+66":  {Min: 9, Max: 9, Name: "Thailand"},
	"+86":  {Min: 11, Max: 11, Name: "China"},
	"+27":  {Min: 9, Max: 9, Name: "South Africa"},
	"+49":  {Min: 10, Max: 12, Name: "Germany"},
	"+33":  {Min: 9, Max: 9, Name: "France"},
}

var ErrRequired = errors.New("Phone number is required")

// Lookup returns the rule for a country code, if the table has one.
func Lookup(countryCode string) (Rule, bool) {
	r, ok := rules[strings.TrimSpace(countryCode)]
	return r, ok
}

// Normalize keeps only the digits of a local number.
func Normalize(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks the digit count of number for countryCode. Spaces, dashes
// and parentheses are ignored.
func Validate(countryCode, number string) error {
	digits := Normalize(number)
	if digits == "" {
		return ErrRequired
	}

	n := len(digits)
	if rule, ok := Lookup(countryCode); ok {
		if n >= rule.Min && n <= rule.Max {
			return nil
		}
		if rule.Min == rule.Max {
			return fmt.Errorf("Phone for %s must be %d digits", rule.Name, rule.Min)
		}
		return fmt.Errorf("Phone for %s must be between %d and %d digits", rule.Name, rule.Min, rule.Max)
	}

	if n < fallbackMin || n > fallbackMax {
		return fmt.Errorf("Phone length must be between %d and %d digits", fallbackMin, fallbackMax)
	}
	return nil
}
