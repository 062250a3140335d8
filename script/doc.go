/*
Package script wraps the boilerplate shared by nearly every command-line tool: top-level flags, optional subcommand dispatch, leveled logging, and clean exits.

There are a few opinionated policies baked in.

  - This package uses [pflag] for posix style flags, and [charmbracelet/log] for leveled output.
  - Conventional flags come for free: '--debug' and '--verbose' raise the log level, '--quiet' silences [Script.Message].
  - Subcommands are plain values implementing the [Subcommand] interface, selected by the first positional argument.
  - Registering the same subcommand name twice fails loudly with [ErrConfig]. A silently replaced handler is almost always a bug.
  - Usage errors terminate the invocation with status 2, the way the flag packages do. They are user mistakes, not defects.
  - A subcommand's Run error is returned to the caller untouched. Program logic failures are the host's to handle, not ours to swallow.

# Invocation

A script with subcommands is always invoked as:

	SCRIPT_NAME [FLAGS...] COMMAND [ARGS...]

A script without registered subcommands just parses flags and hands the parsed [Args] back.

# Lifecycle

Construct with [New], register subcommands, parse. [Script.Exit] coerces any exit request into a valid status, stops the script's background [workers.Group], and waits for it before terminating.
[Script.HandleInterrupt] ties SIGINT to the same shutdown path.

[pflag]: https://github.com/spf13/pflag
[charmbracelet/log]: https://github.com/charmbracelet/log
*/
package script
