// Package shell interprets line-oriented address book commands against an
// in-memory book. Each line is tokenized and parsed with a kong grammar;
// errors are reported and the loop keeps going.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/display"
)

// ErrUnterminatedQuote indicates a line opened a double quote it never closed.
var ErrUnterminatedQuote = errors.New("shell: unterminated quote")

// Shell runs commands against a book and renders results.
type Shell struct {
	book   *book.Book
	out    *display.Renderer
	w      io.Writer
	prompt string
	logger *zap.Logger
	done   bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt prints prompt before reading each line.
func WithPrompt(prompt string) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// WithLogger sets the logger used for command diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Shell over b. Results go through out; prompts and help
// text are written to w.
func New(b *book.Book, out *display.Renderer, w io.Writer, opts ...Option) *Shell {
	s := &Shell{book: b, out: out, w: w, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands from r until EOF or an exit command.
func (s *Shell) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for !s.done {
		if s.prompt != "" {
			_, _ = fmt.Fprint(s.w, s.prompt)
		}
		if !sc.Scan() {
			break
		}
		if err := s.Exec(sc.Text()); err != nil {
			if werr := s.out.Error(err); werr != nil {
				return werr
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("shell: reading input: %w", err)
	}
	return nil
}

// Exec runs a single command line. Blank lines are ignored.
func (s *Shell) Exec(line string) error {
	args, err := fields(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	s.logger.Debug("command", zap.Strings("args", args))

	var g grammar
	parser, err := kong.New(&g,
		kong.Name("addressbook"),
		kong.NoDefaultHelp(),
		kong.Writers(s.w, s.w),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("shell: building parser: %w", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run(s)
}

// Done reports whether an exit command has been run.
func (s *Shell) Done() bool { return s.done }

// fields splits line on whitespace. Double quotes group words so names may
// contain spaces.
func fields(line string) ([]string, error) {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		inWord  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inWord = true
		case !inQuote && (r == ' ' || r == '\t'):
			if inWord {
				out = append(out, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	if inWord {
		out = append(out, cur.String())
	}
	return out, nil
}
