// Package book implements the address book: a name-keyed collection of
// contact records that remembers insertion order.
package book

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/contact"
)

var (
	// ErrRecordNotFound indicates no record exists under the given name.
	ErrRecordNotFound = errors.New("book: record not found")
	// ErrDuplicateName indicates AddRecord was refused under the Reject policy.
	ErrDuplicateName = errors.New("book: record already exists")
)

// Policy controls what AddRecord does when a name is already present.
type Policy string

const (
	// Overwrite replaces the existing record silently.
	Overwrite Policy = "overwrite"
	// Reject keeps the existing record and returns ErrDuplicateName.
	Reject Policy = "reject"
)

// Book maps contact names to records. Iteration follows insertion order; a
// replaced record keeps the position of the one it replaced.
// A Book is not safe for concurrent use.
type Book struct {
	entries *orderedmap.OrderedMap[string, *contact.Record]
	policy  Policy
	logger  *zap.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger used for mutation diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDuplicatePolicy sets how AddRecord treats an existing name.
func WithDuplicatePolicy(p Policy) Option {
	return func(b *Book) {
		if p != "" {
			b.policy = p
		}
	}
}

// New creates an empty Book. The default policy is Overwrite.
func New(opts ...Option) *Book {
	b := &Book{
		entries: orderedmap.New[string, *contact.Record](),
		policy:  Overwrite,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddRecord stores r under its name. Under Overwrite it always succeeds.
func (b *Book) AddRecord(r *contact.Record) error {
	name := r.Name().Value()
	if b.policy == Reject {
		if _, ok := b.entries.Get(name); ok {
			b.logger.Debug("record rejected", zap.String("name", name))
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	if _, replaced := b.entries.Set(name, r); replaced {
		b.logger.Debug("record replaced", zap.String("name", name))
		return nil
	}
	b.logger.Debug("record added", zap.String("name", name), zap.Int("phones", len(r.Phones())))
	return nil
}

// Find returns the record stored under name.
func (b *Book) Find(name string) (*contact.Record, bool) {
	return b.entries.Get(name)
}

// Delete removes the record stored under name.
func (b *Book) Delete(name string) error {
	if _, ok := b.entries.Delete(name); !ok {
		return fmt.Errorf("%w: %q", ErrRecordNotFound, name)
	}
	b.logger.Debug("record deleted", zap.String("name", name))
	return nil
}

// Len returns the number of records.
func (b *Book) Len() int {
	return b.entries.Len()
}

// Records returns all records in insertion order.
func (b *Book) Records() []*contact.Record {
	out := make([]*contact.Record, 0, b.entries.Len())
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Names returns all record names in insertion order.
func (b *Book) Names() []string {
	out := make([]string, 0, b.entries.Len())
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// ParsePolicy converts a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case Overwrite, Reject:
		return Policy(s), nil
	case "":
		return Overwrite, nil
	default:
		return "", fmt.Errorf("book: unknown duplicate policy %q", s)
	}
}
