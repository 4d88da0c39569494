package valueobject

import (
	"errors"
	"strings"
)

// Address is an immutable postal address used for order shipping addresses
// and profile contact details.
type Address struct {
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
}

// Address validation errors
var (
	ErrAddressLine1Required   = errors.New("address line 1 is required")
	ErrAddressCityRequired    = errors.New("city is required")
	ErrAddressCountryRequired = errors.New("country is required")
	ErrAddressFieldTooLong    = errors.New("address field exceeds 100 characters")
)

const maxAddressFieldLen = 100

// NewAddress creates a validated Address. line2, state and postalCode are optional.
func NewAddress(line1, line2, city, state, postalCode, country string) (Address, error) {
	a := Address{
		line1:      strings.TrimSpace(line1),
		line2:      strings.TrimSpace(line2),
		city:       strings.TrimSpace(city),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
	}

	if a.line1 == "" {
		return Address{}, ErrAddressLine1Required
	}
	if a.city == "" {
		return Address{}, ErrAddressCityRequired
	}
	if a.country == "" {
		return Address{}, ErrAddressCountryRequired
	}
	for _, f := range []string{a.line1, a.line2, a.city, a.state, a.postalCode, a.country} {
		if len(f) > maxAddressFieldLen {
			return Address{}, ErrAddressFieldTooLong
		}
	}
	return a, nil
}

func (a Address) Line1() string      { return a.line1 }
func (a Address) Line2() string      { return a.line2 }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }

// IsEmpty reports whether the address is the zero value
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// String returns a single-line representation
func (a Address) String() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.line1, a.line2, a.city, a.state, a.postalCode, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// RestoreAddress rebuilds an address read from storage without validating it
func RestoreAddress(line1, line2, city, state, postalCode, country string) Address {
	return Address{
		line1:      line1,
		line2:      line2,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
	}
}
