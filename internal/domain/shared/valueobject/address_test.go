package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("valid address trims fields", func(t *testing.T) {
		a, err := NewAddress(" 215 Clayton St. ", "", "San Francisco", "CA", "94117", "US")
		require.NoError(t, err)
		assert.Equal(t, "215 Clayton St.", a.Line1())
		assert.Equal(t, "San Francisco", a.City())
		assert.Equal(t, "215 Clayton St., San Francisco, CA, 94117, US", a.String())
		assert.False(t, a.IsEmpty())
	})

	tests := []struct {
		name    string
		line1   string
		city    string
		country string
		wantErr error
	}{
		{"missing line1", "", "City", "US", ErrAddressLine1Required},
		{"missing city", "Street", " ", "US", ErrAddressCityRequired},
		{"missing country", "Street", "City", "", ErrAddressCountryRequired},
		{"too long", strings.Repeat("x", 101), "City", "US", ErrAddressFieldTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddress(tt.line1, "", tt.city, "", "", tt.country)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddress_IsEmpty(t *testing.T) {
	assert.True(t, Address{}.IsEmpty())
}
