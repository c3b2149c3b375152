// Package phone normalizes subscriber numbers to E.164.
package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion applies to numbers written without an international prefix.
const DefaultRegion = "FR"

var (
	ErrEmpty   = errors.New("phone: number is empty")
	ErrInvalid = errors.New("phone: number is not valid")
)

// Normalize parses raw in the given region and returns it in E.164 form.
// An empty region falls back to DefaultRegion. A leading "00" international
// prefix is accepted.
func Normalize(raw, region string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmpty
	}
	if region == "" {
		region = DefaultRegion
	}
	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	num, err := phonenumbers.Parse(s, strings.ToUpper(region))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalid
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
