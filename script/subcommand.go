package script

import (
	"fmt"
	"io"
	"os"
)

// Subcommand is a named secondary operation mode of a [Script], selected by the first positional argument.
type Subcommand interface {
	// Name is the unique token that selects this subcommand.
	Name() string
	// Description is the one-line summary shown in usage output.
	Description() string
	// Run receives the fully parsed argument bundle after dispatch.
	Run(args *Args) error
}

// DetailedSubcommand optionally extends [Subcommand] with longer usage text.
type DetailedSubcommand interface {
	Subcommand
	// LongDescription is shown in full usage output, after the one-line summary.
	LongDescription() string
	// Epilog is shown at the end of full usage output.
	Epilog() string
}

// Binder is implemented by subcommands that want a back-reference to the [Script] they were registered with.
// Bind is called once, during registration.
type Binder interface {
	Bind(s *Script)
}

// Stub is a [Subcommand] with no behavior yet.
// Running it reports that nothing is implemented on the error stream and succeeds, which makes it a safe default to embed in handlers under development.
type Stub struct {
	CommandName string
	Short       string
	Err         io.Writer // Defaults to os.Stderr.
}

func (s *Stub) Name() string {
	return s.CommandName
}

func (s *Stub) Description() string {
	return s.Short
}

// Run reports "not implemented" and returns nil. An unfinished handler is a placeholder, not a failure.
func (s *Stub) Run(*Args) error {
	out := s.Err
	if out == nil {
		out = os.Stderr
	}
	_, _ = fmt.Fprintf(out, "Subcommand %s has no run method implemented\n", s.CommandName)
	return nil
}
