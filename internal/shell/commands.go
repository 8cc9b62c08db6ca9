package shell

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
)

// grammar is the command set accepted on each line.
type grammar struct {
	Add         AddCmd         `cmd:"" help:"Add a contact, or add phones to an existing one."`
	Change      ChangeCmd      `cmd:"" help:"Replace one of a contact's phones."`
	RemovePhone RemovePhoneCmd `cmd:"" help:"Remove one of a contact's phones."`
	FindPhone   FindPhoneCmd   `cmd:"" help:"Look up a phone on a contact."`
	Show        ShowCmd        `cmd:"" help:"Show a contact."`
	Delete      DeleteCmd      `cmd:"" help:"Delete a contact."`
	All         AllCmd         `cmd:"" help:"List all contacts."`
	Help        HelpCmd        `cmd:"" help:"List commands."`
	Exit        ExitCmd        `cmd:"" aliases:"close,quit" help:"Leave the shell."`
}

// AddCmd creates a record, or appends phones to an existing one.
type AddCmd struct {
	Name   string   `arg:"" help:"Contact name."`
	Phones []string `arg:"" optional:"" help:"Ten-digit phone numbers."`
}

// Run executes the add command. Phones are validated before anything is
// stored, so a bad number leaves the book untouched.
func (c *AddCmd) Run(s *Shell) error {
	for _, p := range c.Phones {
		if _, err := contact.NewPhone(p); err != nil {
			return err
		}
	}

	r, exists := s.book.Find(c.Name)
	if !exists {
		r = contact.NewRecord(c.Name)
	}
	for _, p := range c.Phones {
		if err := r.AddPhone(p); err != nil {
			return err
		}
	}
	if exists {
		return s.out.Info(fmt.Sprintf("Contact %s updated", c.Name))
	}
	if err := s.book.AddRecord(r); err != nil {
		return err
	}
	return s.out.Info(fmt.Sprintf("Record %s added", c.Name))
}

// ChangeCmd edits a phone in place.
type ChangeCmd struct {
	Name string `arg:"" help:"Contact name."`
	Old  string `arg:"" help:"Current phone number."`
	New  string `arg:"" help:"Replacement phone number."`
}

// Run executes the change command.
func (c *ChangeCmd) Run(s *Shell) error {
	r, err := s.find(c.Name)
	if err != nil {
		return err
	}
	if err := r.EditPhone(c.Old, c.New); err != nil {
		return err
	}
	return s.out.Info("Phone updated")
}

// RemovePhoneCmd removes a phone from a record.
type RemovePhoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number to remove."`
}

// Run executes the remove-phone command.
func (c *RemovePhoneCmd) Run(s *Shell) error {
	r, err := s.find(c.Name)
	if err != nil {
		return err
	}
	if err := r.RemovePhone(c.Phone); err != nil {
		return err
	}
	return s.out.Info("Phone removed")
}

// FindPhoneCmd prints a phone if the record has it.
type FindPhoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number to look up."`
}

// Run executes the find-phone command.
func (c *FindPhoneCmd) Run(s *Shell) error {
	r, err := s.find(c.Name)
	if err != nil {
		return err
	}
	found, ok := r.FindPhone(c.Phone)
	if !ok {
		return fmt.Errorf("%w: %q", contact.ErrPhoneNotFound, c.Phone)
	}
	return s.out.Phone(r.Name().Value(), found)
}

// ShowCmd prints one record.
type ShowCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the show command.
func (c *ShowCmd) Run(s *Shell) error {
	r, err := s.find(c.Name)
	if err != nil {
		return err
	}
	return s.out.Record(r)
}

// DeleteCmd removes a record.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(s *Shell) error {
	if err := s.book.Delete(c.Name); err != nil {
		return err
	}
	return s.out.Info(fmt.Sprintf("Record %s deleted", c.Name))
}

// AllCmd lists every record.
type AllCmd struct{}

// Run executes the all command.
func (c *AllCmd) Run(s *Shell) error {
	return s.out.Records(s.book.Records())
}

// HelpCmd lists the available commands.
type HelpCmd struct{}

// Run executes the help command.
func (c *HelpCmd) Run(kctx *kong.Context, s *Shell) error {
	for _, n := range kctx.Model.Children {
		if _, err := fmt.Fprintf(s.w, "  %-36s %s\n", n.Summary(), n.Help); err != nil {
			return err
		}
	}
	return nil
}

// ExitCmd ends the session.
type ExitCmd struct{}

// Run executes the exit command.
func (c *ExitCmd) Run(s *Shell) error {
	s.done = true
	return nil
}

// find returns the named record or a wrapped book.ErrRecordNotFound.
func (s *Shell) find(name string) (*contact.Record, error) {
	r, ok := s.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", book.ErrRecordNotFound, name)
	}
	return r, nil
}
