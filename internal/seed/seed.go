// Package seed loads read-only YAML contact fixtures into an address book.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
)

// ErrNoContacts indicates a seed file declares no contacts.
var ErrNoContacts = errors.New("no contacts declared")

// File is the decoded form of a seed file.
type File struct {
	Contacts []Contact `yaml:"contacts"`
}

// Contact is one seeded record.
type Contact struct {
	Name   string   `yaml:"name"`
	Phones []string `yaml:"phones"`
}

// Parse decodes seed YAML, rejecting unknown fields.
func Parse(data []byte) (File, error) {
	f, err := parse(data)
	if err != nil {
		return File{}, fmt.Errorf("seed: %w", err)
	}
	return f, nil
}

// Load reads and parses the seed file name from fsys.
func Load(fsys fs.FS, name string) (File, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return File{}, fmt.Errorf("seed: reading %s: %w", name, err)
	}
	f, err := parse(data)
	if err != nil {
		return File{}, fmt.Errorf("seed: %s: %w", name, err)
	}
	return f, nil
}

func parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// Empty and comment-only files decode to EOF and fall through to ErrNoContacts.
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parsing: %w", err)
	}
	if len(f.Contacts) == 0 {
		return File{}, ErrNoContacts
	}
	return f, nil
}

// Records builds validated records for every contact. No records are
// returned if any contact is invalid.
func (f File) Records() ([]*contact.Record, error) {
	records := make([]*contact.Record, 0, len(f.Contacts))
	for i, c := range f.Contacts {
		if c.Name == "" {
			return nil, fmt.Errorf("seed: contact #%d: empty name", i+1)
		}
		r := contact.NewRecord(c.Name)
		for _, p := range c.Phones {
			if err := r.AddPhone(p); err != nil {
				return nil, fmt.Errorf("seed: contact %q: %w", c.Name, err)
			}
		}
		records = append(records, r)
	}
	return records, nil
}

// Populate adds every seeded record to b.
func (f File) Populate(b *book.Book) error {
	records, err := f.Records()
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := b.AddRecord(r); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
