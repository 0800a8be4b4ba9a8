package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/phone"
)

func saConfig() config.PhoneConfig {
	return config.PhoneConfig{
		CountryCode: "27",
		LocalPrefix: "0",
		MinDigits:   9,
		MaxDigits:   13,
	}
}

func TestNormalize_SouthAfricanForms(t *testing.T) {
	n := phone.NewNormalizer(saConfig())

	testCases := []struct {
		name        string
		raw         string
		want        string
		unambiguous bool
	}{
		{name: "local trunk form", raw: "0821234567", want: "+27821234567", unambiguous: true},
		{name: "international form", raw: "+27821234567", want: "+27821234567", unambiguous: true},
		{name: "double zero dialing", raw: "0027821234567", want: "+27821234567", unambiguous: true},
		{name: "bare country code", raw: "27821234567", want: "+27821234567", unambiguous: true},
		{name: "separators stripped", raw: "082 123-4567", want: "+27821234567", unambiguous: true},
		{name: "parenthesised", raw: "(082) 123 4567", want: "+27821234567", unambiguous: true},
		{name: "foreign number plausible", raw: "+44771234567", want: "+44771234567", unambiguous: false},
		{name: "too short", raw: "12345678", want: "", unambiguous: false},
		{name: "too long", raw: "082123456789012345", want: "", unambiguous: false},
		{name: "empty", raw: "", want: "", unambiguous: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, unambiguous := n.Normalize(tc.raw)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.unambiguous, unambiguous)
		})
	}
}

func TestLastN(t *testing.T) {
	assert.Equal(t, "821234567", phone.LastN("+27821234567", 9))
	assert.Equal(t, "1234567", phone.LastN("1234567", 9))
	assert.Equal(t, "", phone.LastN("", 9))
}

func TestFuzzyEqual_LocalVsInternational(t *testing.T) {
	assert.True(t, phone.FuzzyEqual("0821234567", "+27821234567", 9))
	assert.True(t, phone.FuzzyEqual("+27821234567", "+27821234567", 9))
	assert.False(t, phone.FuzzyEqual("0821234568", "+27821234567", 9))
	assert.False(t, phone.FuzzyEqual("", "+27821234567", 9))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "27821234567", phone.Digits("+27 82 123-4567"))
	assert.Equal(t, "", phone.Digits("no digits"))
}
