package suppliers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateContact(t *testing.T) {
	cases := []struct {
		name    string
		contact string
		valid   bool
	}{
		{"valid mobile", "0412345678", true},
		{"valid with surrounding spaces", " 0412345678 ", true},
		{"wrong prefix", "0312345678", false},
		{"too long", "041234567890", false},
		{"too short", "04123456", false},
		{"symbol", "0412@5678", false},
		{"letters", "0412BC5D7A", false},
		{"empty", "", false},
		{"blank", "   ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateContact(tc.contact)
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Equal(t, "invalid phone number (it must start with 04 followed by 8 digits)", err.Error())
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("Acme"))
	require.Error(t, ValidateName(""))
	require.Error(t, ValidateName("   "))
}
