// Package contact defines the values stored in an address book: names,
// validated phone numbers, and the records that own them.
package contact

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPhone indicates a phone number is not exactly ten decimal digits.
var ErrInvalidPhone = errors.New("contact: invalid phone number")

// phonePattern is anchored at both ends; RE2's \d matches ASCII digits only.
var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Field is a labeled string value with a string form.
type Field struct {
	value string
}

// NewField stores value as-is.
func NewField(value string) Field {
	return Field{value: value}
}

// Value returns the stored value.
func (f Field) Value() string { return f.value }

// String returns the stored value.
func (f Field) String() string { return f.value }

// Name identifies a record.
type Name struct {
	Field
}

// NewName returns a Name holding value.
func NewName(value string) Name {
	return Name{Field: NewField(value)}
}

// Phone is a phone number that passed ValidNumber. The zero Phone is never
// returned alongside a nil error.
type Phone struct {
	Field
}

// NewPhone validates number and returns it as a Phone.
func NewPhone(number string) (Phone, error) {
	if !ValidNumber(number) {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, number)
	}
	return Phone{Field: NewField(number)}, nil
}

// ValidNumber reports whether s consists of exactly ten decimal digits.
func ValidNumber(s string) bool {
	return phonePattern.MatchString(s)
}
