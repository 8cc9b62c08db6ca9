package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/addressbook"
	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/browse"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/display"
	"github.com/smileynet/addressbook/internal/seed"
	"github.com/smileynet/addressbook/internal/shell"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// localSeedDir is checked for seed files before the embedded fixtures.
const localSeedDir = ".addressbook/seeds"

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals `embed:""`

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Demo    DemoCmd          `cmd:"" help:"Replay the demonstration script."`
	Shell   ShellCmd         `cmd:"" help:"Run address book commands read from stdin."`
	Browse  BrowseCmd        `cmd:"" help:"Browse contacts interactively."`
	Check   CheckCmd         `cmd:"" help:"Check phone numbers against the ten-digit rule."`
}

// Globals holds flags shared by every command. Empty values defer to config.
type Globals struct {
	Verbose          bool   `help:"Log debug diagnostics to stderr." short:"v"`
	Format           string `help:"Output format: text or yaml."`
	Color            string `help:"Color output: auto, always or never."`
	RejectDuplicates bool   `help:"Refuse to add a contact whose name already exists."`
}

// ErrInvalidNumbers indicates check found at least one invalid number.
var ErrInvalidNumbers = errors.New("check: invalid phone numbers")

// env is the wiring shared by commands: resolved config, logger, renderer.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	out    *display.Renderer
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// env loads config, applies flag overrides and builds the shared wiring.
func (g *Globals) env(w io.Writer) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	g.apply(cfg)
	return newEnv(cfg, w)
}

// apply copies set flags onto cfg.
func (g *Globals) apply(cfg *config.Config) {
	if g.Format != "" {
		cfg.Output.Format = g.Format
	}
	if g.Color != "" {
		cfg.Output.Color = g.Color
	}
	if g.RejectDuplicates {
		cfg.Book.Duplicates = string(book.Reject)
	}
	if g.Verbose {
		cfg.Log.Level = "debug"
	}
}

// newEnv validates cfg and builds a logger and a renderer writing to w.
func newEnv(cfg *config.Config, w io.Writer) (*env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	out := display.New(display.Options{Writer: w, Format: cfg.Output.Format, Color: cfg.Output.Color})
	return &env{cfg: cfg, logger: logger, out: out}, nil
}

// newLogger builds a development logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return logger, nil
}

// newBook returns an empty book configured from e.
func (e *env) newBook() *book.Book {
	// Validate has already rejected unknown policies.
	policy, _ := book.ParsePolicy(e.cfg.Book.Duplicates)
	return book.New(
		book.WithLogger(e.logger.Named("book")),
		book.WithDuplicatePolicy(policy),
	)
}

// seedBook populates b from the seed named by ref. An empty ref is a no-op.
func (e *env) seedBook(b *book.Book, ref string) error {
	if ref == "" {
		return nil
	}
	fsys, name := seedSource(ref)
	f, err := seed.Load(fsys, name)
	if err != nil {
		return err
	}
	if err := f.Populate(b); err != nil {
		return err
	}
	e.logger.Debug("seed loaded", zap.String("seed", ref), zap.Int("contacts", b.Len()))
	return nil
}

// seedSource resolves a seed reference. Paths and *.yaml names are read from
// disk; bare names resolve against localSeedDir, then the embedded seeds.
func seedSource(ref string) (fs.FS, string) {
	if strings.ContainsAny(ref, `/\`) || strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") {
		dir, file := filepath.Split(ref)
		if dir == "" {
			dir = "."
		}
		return os.DirFS(dir), file
	}
	return addressbook.OverlayFS(localSeedDir, addressbook.Seeds), ref + ".yaml"
}

// --- Demo command ---

// DemoCmd replays the demonstration script against a fresh book.
type DemoCmd struct{}

// Run executes the demo command.
func (d *DemoCmd) Run(g *Globals) error {
	e, err := g.env(os.Stdout)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	defer func() { _ = e.logger.Sync() }()
	return d.run(e)
}

func (d *DemoCmd) run(e *env) error {
	b := e.newBook()

	john := contact.NewRecord("John")
	for _, p := range []string{"1234567890", "5555555555"} {
		if err := john.AddPhone(p); err != nil {
			return fmt.Errorf("demo: %w", err)
		}
	}
	if err := addRecord(e, b, john); err != nil {
		return err
	}

	jane := contact.NewRecord("Jane")
	if err := jane.AddPhone("9876543210"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if err := addRecord(e, b, jane); err != nil {
		return err
	}

	if err := e.out.Records(b.Records()); err != nil {
		return err
	}

	found, ok := b.Find("John")
	if !ok {
		return fmt.Errorf("demo: %w: %q", book.ErrRecordNotFound, "John")
	}
	if err := found.EditPhone("1234567890", "1112223333"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if err := e.out.Record(found); err != nil {
		return err
	}

	phone, ok := found.FindPhone("5555555555")
	if !ok {
		return fmt.Errorf("demo: %w: %q", contact.ErrPhoneNotFound, "5555555555")
	}
	if err := e.out.Phone(found.Name().Value(), phone); err != nil {
		return err
	}

	if err := b.Delete("Jane"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if err := e.out.Info("Record Jane deleted"); err != nil {
		return err
	}
	return e.out.Records(b.Records())
}

func addRecord(e *env, b *book.Book, r *contact.Record) error {
	if err := b.AddRecord(r); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return e.out.Info(fmt.Sprintf("Record %s added", r.Name()))
}

// --- Shell command ---

// ShellCmd runs shell commands from stdin.
type ShellCmd struct {
	Seed string `help:"Seed name or YAML path to load first (default from config)."`
}

// Run executes the shell command.
func (s *ShellCmd) Run(g *Globals) error {
	e, err := g.env(os.Stdout)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer func() { _ = e.logger.Sync() }()
	return s.run(e, os.Stdin, os.Stdout, display.IsTTY(os.Stdin))
}

func (s *ShellCmd) run(e *env, in io.Reader, w io.Writer, interactive bool) error {
	ref := s.Seed
	if ref == "" {
		ref = e.cfg.Seed
	}
	b := e.newBook()
	if err := e.seedBook(b, ref); err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	opts := []shell.Option{shell.WithLogger(e.logger.Named("shell"))}
	if interactive {
		_, _ = fmt.Fprintln(w, `Address book shell. Type "help" for commands.`)
		opts = append(opts, shell.WithPrompt("> "))
	}
	return shell.New(b, e.out, w, opts...).Run(in)
}

// --- Browse command ---

// BrowseCmd opens the interactive browse view.
type BrowseCmd struct {
	Seed string `help:"Seed name or YAML path to browse." default:"demo"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run executes the browse command.
func (c *BrowseCmd) Run(g *Globals) error {
	e, err := g.env(os.Stdout)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer func() { _ = e.logger.Sync() }()

	b := e.newBook()
	if err := e.seedBook(b, c.Seed); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	prog := tea.NewProgram(browse.New(b), tea.WithAltScreen())
	return c.run(display.IsTTY(os.Stdout), prog)
}

// run executes the tea program, enabling testable wiring.
func (c *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// --- Check command ---

// CheckCmd reports whether each number satisfies the phone rule.
type CheckCmd struct {
	Numbers []string `arg:"" help:"Phone numbers to check."`
}

// Run executes the check command.
func (c *CheckCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *CheckCmd) run(w io.Writer) error {
	invalid := 0
	for _, n := range c.Numbers {
		verdict := "valid"
		if !contact.ValidNumber(n) {
			verdict = "invalid"
			invalid++
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", n, verdict)
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidNumbers, invalid, len(c.Numbers))
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInvalid = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, ErrInvalidNumbers) {
		return exitInvalid
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("An in-memory contact address book."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
