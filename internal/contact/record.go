package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPhoneNotFound indicates a record holds no phone with the given number.
var ErrPhoneNotFound = errors.New("contact: phone not found")

// Record is a contact entry: one name and an ordered list of phones.
// Duplicate numbers are allowed; lookups act on the first match.
// A Record is not safe for concurrent use.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a Record named name with no phones.
func NewRecord(name string) *Record {
	return &Record{name: NewName(name)}
}

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the record's phones in insertion order.
func (r *Record) Phones() []Phone {
	return append([]Phone(nil), r.phones...)
}

// AddPhone validates number and appends it.
func (r *Record) AddPhone(number string) error {
	p, err := NewPhone(number)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone equal to number.
func (r *Record) RemovePhone(number string) error {
	i := r.index(number)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, number)
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// EditPhone replaces the first phone equal to oldNumber with newNumber,
// keeping its position. The record is unchanged on error.
func (r *Record) EditPhone(oldNumber, newNumber string) error {
	i := r.index(oldNumber)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, oldNumber)
	}
	p, err := NewPhone(newNumber)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to number.
func (r *Record) FindPhone(number string) (string, bool) {
	i := r.index(number)
	if i < 0 {
		return "", false
	}
	return r.phones[i].Value(), true
}

// String formats the record as "Contact name: John, phones: 1234567890; 5555555555".
func (r *Record) String() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.Value()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(values, "; "))
}

// index returns the position of the first phone equal to number, or -1.
func (r *Record) index(number string) int {
	for i, p := range r.phones {
		if p.Value() == number {
			return i
		}
	}
	return -1
}
