// Package display renders address book records as plain text, styled
// terminal output, or YAML.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/addressbook/internal/contact"
)

// Options configures a Renderer.
type Options struct {
	Writer io.Writer // Output destination (default: os.Stdout).
	Format string    // "text" (default) or "yaml".
	Color  string    // "auto" (default), "always" or "never".
}

// Renderer writes records and status lines to a writer.
type Renderer struct {
	w      io.Writer
	yaml   bool
	styled bool
	st     styles
}

// recordView is the YAML shape of a record.
type recordView struct {
	Name   string   `yaml:"name"`
	Phones []string `yaml:"phones"`
}

// New creates a Renderer. Color "auto" styles output only when the writer
// is a terminal.
func New(opts Options) *Renderer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	r := &Renderer{w: opts.Writer, yaml: opts.Format == "yaml"}

	re := lipgloss.NewRenderer(opts.Writer)
	switch opts.Color {
	case "never":
	case "always":
		re.SetColorProfile(termenv.ANSI256)
		r.styled = true
	default:
		r.styled = IsTTY(opts.Writer)
	}
	r.st = newStyles(re)
	return r
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Record writes a single record.
func (r *Renderer) Record(rec *contact.Record) error {
	if r.yaml {
		return r.encode(view(rec))
	}
	_, err := fmt.Fprintln(r.w, r.line(rec))
	return err
}

// Records writes records in the given order. An empty list writes a
// placeholder line in text mode and "[]" in YAML mode.
func (r *Renderer) Records(recs []*contact.Record) error {
	if r.yaml {
		views := make([]recordView, len(recs))
		for i, rec := range recs {
			views[i] = view(rec)
		}
		return r.encode(views)
	}
	if len(recs) == 0 {
		return r.Info("No contacts.")
	}
	for _, rec := range recs {
		if _, err := fmt.Fprintln(r.w, r.line(rec)); err != nil {
			return err
		}
	}
	return nil
}

// Phone writes a found phone as "name: number".
func (r *Renderer) Phone(name, number string) error {
	if r.styled {
		name, number = r.st.name.Render(name), r.st.phone.Render(number)
	}
	_, err := fmt.Fprintf(r.w, "%s: %s\n", name, number)
	return err
}

// Info writes a status line.
func (r *Renderer) Info(msg string) error {
	if r.styled {
		msg = r.st.ok.Render(msg)
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

// Error writes err as "error: <message>".
func (r *Renderer) Error(err error) error {
	prefix := "error:"
	if r.styled {
		prefix = r.st.err.Render(prefix)
	}
	_, werr := fmt.Fprintf(r.w, "%s %s\n", prefix, err)
	return werr
}

// line formats a record. Unstyled output is exactly Record.String.
func (r *Renderer) line(rec *contact.Record) string {
	if !r.styled {
		return rec.String()
	}
	phones := rec.Phones()
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = r.st.phone.Render(p.Value())
	}
	return r.st.label.Render("Contact name:") + " " + r.st.name.Render(rec.Name().Value()) +
		r.st.label.Render(", phones:") + " " + strings.Join(parts, "; ")
}

func (r *Renderer) encode(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("display: encoding yaml: %w", err)
	}
	return enc.Close()
}

func view(rec *contact.Record) recordView {
	phones := rec.Phones()
	v := recordView{Name: rec.Name().Value(), Phones: make([]string, len(phones))}
	for i, p := range phones {
		v.Phones[i] = p.Value()
	}
	return v
}
