package suppliers

import (
	"regexp"
	"strings"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
)

// Australian mobile format: "04" followed by exactly 8 digits.
var contactPattern = regexp.MustCompile(`^04\d{8}$`)

// ValidateName rejects blank supplier names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.Invalid("name", "supplier name is required")
	}
	return nil
}

// ValidateContact rejects anything that is not "04" plus 8 digits.
func ValidateContact(contact string) error {
	if !contactPattern.MatchString(strings.TrimSpace(contact)) {
		return shared.Invalid("contact", "invalid phone number (it must start with 04 followed by 8 digits)")
	}
	return nil
}
