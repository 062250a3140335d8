package script

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

var (
	ErrArgMap = errors.New("failed to map argument(s)")
)

// Args is the parsed argument bundle handed to a dispatched [Subcommand.Run], or returned from [Script.ParseArgs] when no dispatch happened.
type Args struct {
	// Command is the subcommand token that selected the handler, or empty when none was given.
	Command string
	// Positional holds the positional arguments remaining after the command token.
	Positional []string
	// Flags is the script's top-level flag set, after parsing.
	Flags *flag.FlagSet
}

// Map assigns positional arguments to targets in order, requiring at least minArgs of them.
// It's an easy way for a Run implementation to name its arguments up front.
// Target elements must not be nil.
func (a *Args) Map(minArgs int, targets ...*string) error {
	if len(a.Positional) < minArgs {
		return fmt.Errorf("%w: not enough arguments (%d) to satisfy minArgs (%d)", ErrArgMap, len(a.Positional), minArgs)
	}
	if len(targets) < minArgs {
		return fmt.Errorf("%w: not enough targets (%d) to satisfy minArgs (%d)", ErrArgMap, len(targets), minArgs)
	}
	for i := 0; i < len(a.Positional) && i < len(targets); i++ {
		if targets[i] == nil {
			return fmt.Errorf("%w: target %d is nil", ErrArgMap, i)
		}
		*targets[i] = a.Positional[i]
	}
	return nil
}

// MustGet is used with a [flag.FlagSet] getter to panic if the flag is not defined, or is not the right type.
// The developer usually knows whether a get call will fail, so this makes flag access less noisy.
func MustGet[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
