package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
)

// Contact is the doorstep contact captured by the pickup wizard. It is
// stored as a JSON column so the snapshot survives later profile edits.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Notes   string `json:"notes,omitempty"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?\(?[0-9\s\-()]{10,}$`)
)

// ValidEmail reports whether the value looks like an email address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether the value looks like a phone number:
// an optional leading + or (, then at least ten digits, spaces,
// dashes or parentheses.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Value marshals the contact into its JSON column representation.
func (c Contact) Value() (driver.Value, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("contact: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes a JSON column into the contact.
func (c *Contact) Scan(value interface{}) error {
	if value == nil {
		*c = Contact{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("contact: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, c)
}

func toBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
