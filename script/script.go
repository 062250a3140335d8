package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/saylorsolutions/scriptx/proc"
	"github.com/saylorsolutions/scriptx/workers"
)

var (
	ErrConfig         = errors.New("invalid script configuration")
	ErrUnknownCommand = errors.New("unknown command")

	// Browsers are the accepted values for the -B/--browser flag.
	Browsers = []string{"chrome", "chromium", "firefox"}
)

// Script wraps the recurring setup of a command-line tool: a top-level flag set, an optional subcommand registry, a leveled logger, and a worker group drained on exit.
//
// The dispatch lifecycle is linear: configure, parse once, done. Re-parsing within one invocation is not supported.
type Script struct {
	// Exec runs external commands for the script, honoring its DryRun flag.
	Exec proc.Runner

	name        string
	description string
	epilog      string

	flags       *flag.FlagSet
	subcommands map[string]Subcommand
	logger      *log.Logger
	group       *workers.Group
	silent      bool

	out    io.Writer
	errOut io.Writer
	exit   func(int)
}

// New creates a Script named name, defaulting to the name of the running executable.
// The conventional global flags are installed up front: '--debug', '--verbose', '--quiet', '--insecure', and '-B/--browser' restricted to [Browsers].
func New(name string) *Script {
	if len(name) == 0 {
		name = filepath.Base(os.Args[0])
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.Bool("debug", false, "Show debug messages")
	fs.Bool("verbose", false, "Show verbose messages")
	fs.Bool("quiet", false, "Suppress normal output")
	fs.Bool("insecure", false, "No HTTPS certificate validation")
	fs.StringP("browser", "B", "", fmt.Sprintf("Browser to read session cookies from (%s)", strings.Join(Browsers, ", ")))

	s := &Script{
		name:   name,
		flags:  fs,
		group:  workers.NewGroup(context.Background()),
		out:    os.Stdout,
		errOut: os.Stderr,
		exit:   os.Exit,
	}
	s.logger = log.NewWithOptions(s.errOut, log.Options{Prefix: name, Level: log.WarnLevel})
	s.Exec.Log = s.logger
	fs.SetOutput(s.errOut)
	fs.Usage = s.printUsage
	return s
}

// Describe sets the description shown in usage output.
func (s *Script) Describe(description string) *Script {
	s.description = description
	return s
}

// Epilog sets text appended to usage output.
func (s *Script) Epilog(epilog string) *Script {
	s.epilog = epilog
	return s
}

// Name returns the script's name.
func (s *Script) Name() string {
	return s.name
}

// Flags returns the top-level [flag.FlagSet] so the host can define its own arguments before parsing.
func (s *Script) Flags() *flag.FlagSet {
	return s.flags
}

// Logger returns the script's leveled logger.
func (s *Script) Logger() *log.Logger {
	return s.logger
}

// Workers returns the script's background worker group. [Script.Exit] stops and drains it.
func (s *Script) Workers() *workers.Group {
	return s.group
}

// Silence suppresses or re-enables [Script.Message] output.
func (s *Script) Silence(silent bool) {
	s.silent = silent
}

// Redirect points user-visible output somewhere other than stdout/stderr, which is mostly useful in tests.
// Subprocesses run through [Script.Exec] follow the same streams.
func (s *Script) Redirect(out, errOut io.Writer) {
	s.out = out
	s.errOut = errOut
	s.flags.SetOutput(errOut)
	s.logger.SetOutput(errOut)
	s.Exec.Stdout = out
	s.Exec.Stderr = errOut
}

// RedirectInput points subprocess standard input somewhere other than stdin.
func (s *Script) RedirectInput(in io.Reader) {
	s.Exec.Stdin = in
}

// Message writes msg and a newline to standard output, unless the script was silenced with --quiet or [Script.Silence].
func (s *Script) Message(msg string) {
	if s.silent {
		return
	}
	_, _ = fmt.Fprintln(s.out, msg)
}

// Error writes msg and a newline to the error stream regardless of silencing.
func (s *Script) Error(msg string) {
	_, _ = fmt.Fprintln(s.errOut, msg)
}

// AddSubcommand registers sub under its name, enabling dispatch on the first registration.
// Registration fails with [ErrConfig] for a nil subcommand, an empty name, or a name that is already registered.
// A sub implementing [Binder] receives its back-reference here.
func (s *Script) AddSubcommand(sub Subcommand) error {
	if sub == nil {
		return fmt.Errorf("%w: nil subcommand", ErrConfig)
	}
	name := strings.TrimSpace(sub.Name())
	if len(name) == 0 {
		return fmt.Errorf("%w: subcommand has no name", ErrConfig)
	}
	if s.subcommands == nil {
		s.subcommands = map[string]Subcommand{}
	}
	if _, ok := s.subcommands[name]; ok {
		return fmt.Errorf("%w: subcommand %q is already registered", ErrConfig, name)
	}
	s.subcommands[name] = sub
	if binder, ok := sub.(Binder); ok {
		binder.Bind(s)
	}
	return nil
}

// MustAddSubcommand is [Script.AddSubcommand] for registrations known correct at compile time. It panics on a configuration error, since setup can't meaningfully continue.
func (s *Script) MustAddSubcommand(sub Subcommand) {
	if err := s.AddSubcommand(sub); err != nil {
		panic(err)
	}
}

// ParseArgs parses raw arguments, applies the conventional logging flags, and dispatches to a registered subcommand when one is named.
//
// With no subcommands registered, the parsed [Args] is returned without dispatch.
// Malformed arguments and unknown commands are usage errors: reported on the error stream, terminating the process with status 2.
// An error from the dispatched Run is returned to the caller untouched.
func (s *Script) ParseArgs(raw []string) (*Args, error) {
	if err := s.flags.Parse(raw); err != nil {
		// ContinueOnError means pflag reports nothing itself.
		return nil, s.usageError(err)
	}
	if MustGet(s.flags.GetBool("help")) {
		s.flags.Usage()
		s.exit(0)
		return nil, flag.ErrHelp
	}
	s.applyOutputFlags()
	if err := s.checkBrowserFlag(); err != nil {
		return nil, s.usageError(err)
	}

	args := &Args{Flags: s.flags, Positional: s.flags.Args()}
	if len(s.subcommands) == 0 {
		return args, nil
	}
	if len(args.Positional) == 0 {
		return nil, s.usageError(fmt.Errorf("%w: no command given", ErrUnknownCommand))
	}
	name := args.Positional[0]
	sub, ok := s.subcommands[name]
	if !ok {
		return nil, s.usageError(fmt.Errorf("%w: %s", ErrUnknownCommand, name))
	}
	args.Command = name
	args.Positional = args.Positional[1:]
	return args, sub.Run(args)
}

func (s *Script) applyOutputFlags() {
	switch {
	case MustGet(s.flags.GetBool("debug")):
		s.logger.SetLevel(log.DebugLevel)
	case MustGet(s.flags.GetBool("quiet")):
		s.silent = true
	case MustGet(s.flags.GetBool("verbose")):
		s.logger.SetLevel(log.InfoLevel)
	}
}

func (s *Script) checkBrowserFlag() error {
	browser := MustGet(s.flags.GetString("browser"))
	if len(browser) == 0 || slices.Contains(Browsers, browser) {
		return nil
	}
	return fmt.Errorf("invalid browser %q, expected one of: %s", browser, strings.Join(Browsers, ", "))
}

// usageError reports a user mistake on the error stream and terminates the invocation with status 2.
func (s *Script) usageError(err error) error {
	s.Error(err.Error())
	s.flags.Usage()
	s.exit(2)
	return err
}

func (s *Script) printUsage() {
	var buf strings.Builder
	buf.WriteString("USAGE:\n  " + s.name + " [flags]")
	if len(s.subcommands) > 0 {
		buf.WriteString(" COMMAND [args...]")
	}
	buf.WriteString("\n")
	if len(s.description) > 0 {
		buf.WriteString("\n" + strings.TrimSuffix(s.description, "\n") + "\n")
	}
	buf.WriteString("\nFLAGS\n")
	buf.WriteString(s.flags.FlagUsages())
	if len(s.subcommands) > 0 {
		buf.WriteString("\nCOMMANDS\n")
		buf.WriteString(s.commandUsages())
	}
	if len(s.epilog) > 0 {
		buf.WriteString("\n" + strings.TrimSuffix(s.epilog, "\n") + "\n")
	}
	_, _ = fmt.Fprint(s.errOut, buf.String())
}

// commandUsages returns aligned usage lines for registered subcommands, sorted by name.
func (s *Script) commandUsages() string {
	var (
		buf    strings.Builder
		keys   = slices.Sorted(maps.Keys(s.subcommands))
		maxLen int
	)
	for _, key := range keys {
		if len(key) > maxLen {
			maxLen = len(key)
		}
	}
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for _, key := range keys {
		buf.WriteString(fmt.Sprintf(fmtStr, key, s.subcommands[key].Description()))
	}
	return buf.String()
}

// Execute runs an external command with the script's standard streams attached, returning its exit code.
func (s *Script) Execute(ctx context.Context, args ...string) (int, error) {
	return s.Exec.Run(ctx, args...)
}

// CheckOutput runs an external command and captures its standard output.
func (s *Script) CheckOutput(ctx context.Context, args ...string) ([]byte, error) {
	return s.Exec.Output(ctx, args...)
}
