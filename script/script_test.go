package script

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSub struct {
	Stub
	bound *Script
	ran   *Args
	err   error
}

func (c *testSub) Bind(s *Script) {
	c.bound = s
}

func (c *testSub) Run(args *Args) error {
	c.ran = args
	return c.err
}

func newTestScript(t *testing.T) (*Script, *bytes.Buffer, *bytes.Buffer, *[]int) {
	t.Helper()
	var (
		out, errOut bytes.Buffer
		exits       []int
	)
	s := New("testscript")
	s.Redirect(&out, &errOut)
	s.exit = func(code int) {
		exits = append(exits, code)
	}
	return s, &out, &errOut, &exits
}

func TestScript_AddSubcommand(t *testing.T) {
	s, _, _, _ := newTestScript(t)
	sub := &testSub{Stub: Stub{CommandName: "list", Short: "List stuff"}}
	require.NoError(t, s.AddSubcommand(sub))
	assert.Same(t, s, sub.bound, "a Binder subcommand should get its back-reference at registration")

	t.Run("Duplicate name fails loudly", func(t *testing.T) {
		err := s.AddSubcommand(&testSub{Stub: Stub{CommandName: "list", Short: "Another list"}})
		assert.ErrorIs(t, err, ErrConfig)
	})
	t.Run("Nil subcommand", func(t *testing.T) {
		assert.ErrorIs(t, s.AddSubcommand(nil), ErrConfig)
	})
	t.Run("Empty name", func(t *testing.T) {
		err := s.AddSubcommand(&testSub{Stub: Stub{CommandName: "  "}})
		assert.ErrorIs(t, err, ErrConfig)
	})
}

func TestScript_MustAddSubcommand(t *testing.T) {
	s, _, _, _ := newTestScript(t)
	s.MustAddSubcommand(&testSub{Stub: Stub{CommandName: "list"}})
	assert.Panics(t, func() {
		s.MustAddSubcommand(&testSub{Stub: Stub{CommandName: "list"}})
	})
}

func TestScript_ParseArgs_NoSubcommands(t *testing.T) {
	s, _, _, exits := newTestScript(t)
	args, err := s.ParseArgs([]string{"--debug", "a", "b"})
	require.NoError(t, err)
	assert.Empty(t, *exits, "no dispatch and no usage error means no exit")
	assert.Empty(t, args.Command)
	assert.Equal(t, []string{"a", "b"}, args.Positional)
	assert.Equal(t, log.DebugLevel, s.Logger().GetLevel())
}

func TestScript_ParseArgs_Dispatch(t *testing.T) {
	s, _, _, _ := newTestScript(t)
	list := &testSub{Stub: Stub{CommandName: "list", Short: "List stuff"}}
	other := &testSub{Stub: Stub{CommandName: "other"}}
	require.NoError(t, s.AddSubcommand(list))
	require.NoError(t, s.AddSubcommand(other))

	args, err := s.ParseArgs([]string{"list", "extra", "args"})
	require.NoError(t, err)
	require.NotNil(t, list.ran, "the selected subcommand should have run")
	assert.Nil(t, other.ran, "at most one subcommand runs per invocation")
	assert.Equal(t, "list", args.Command)
	assert.Equal(t, []string{"extra", "args"}, args.Positional)
	assert.Same(t, args, list.ran)
}

func TestScript_ParseArgs_RunErrorPropagates(t *testing.T) {
	s, _, _, exits := newTestScript(t)
	errBroken := errors.New("broken handler")
	require.NoError(t, s.AddSubcommand(&testSub{Stub: Stub{CommandName: "boom"}, err: errBroken}))

	_, err := s.ParseArgs([]string{"boom"})
	assert.ErrorIs(t, err, errBroken, "handler failures surface to the caller untouched")
	assert.Empty(t, *exits)
}

func TestScript_ParseArgs_UnknownCommand(t *testing.T) {
	s, _, errOut, exits := newTestScript(t)
	require.NoError(t, s.AddSubcommand(&testSub{Stub: Stub{CommandName: "list"}}))

	_, err := s.ParseArgs([]string{"nope"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, []int{2}, *exits)
	assert.Contains(t, errOut.String(), "unknown command")
	assert.Contains(t, errOut.String(), "COMMANDS")
}

func TestScript_ParseArgs_MissingCommand(t *testing.T) {
	s, _, _, exits := newTestScript(t)
	require.NoError(t, s.AddSubcommand(&testSub{Stub: Stub{CommandName: "list"}}))

	_, err := s.ParseArgs(nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, []int{2}, *exits)
}

func TestScript_ParseArgs_BadFlag(t *testing.T) {
	s, _, errOut, exits := newTestScript(t)
	_, err := s.ParseArgs([]string{"--no-such-flag"})
	assert.Error(t, err)
	assert.Equal(t, []int{2}, *exits)
	// ContinueOnError leaves reporting to us, so the error stream must
	// carry both the complaint and usage.
	assert.Contains(t, errOut.String(), "unknown flag: --no-such-flag")
	assert.Contains(t, errOut.String(), "USAGE:")
	assert.Contains(t, errOut.String(), "FLAGS")
}

func TestScript_ParseArgs_BadFlagValue(t *testing.T) {
	s, _, errOut, exits := newTestScript(t)
	s.Flags().Int("count", 0, "A number")
	_, err := s.ParseArgs([]string{"--count", "many"})
	assert.Error(t, err)
	assert.Equal(t, []int{2}, *exits)
	assert.Contains(t, errOut.String(), "count")
	assert.Contains(t, errOut.String(), "USAGE:")
}

func TestScript_ParseArgs_Quiet(t *testing.T) {
	s, out, _, _ := newTestScript(t)
	_, err := s.ParseArgs([]string{"--quiet"})
	require.NoError(t, err)
	s.Message("should not appear")
	assert.Empty(t, out.String())
	s.Error("still reported")
}

func TestScript_ParseArgs_Verbose(t *testing.T) {
	s, _, _, _ := newTestScript(t)
	_, err := s.ParseArgs([]string{"--verbose"})
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, s.Logger().GetLevel())
}

func TestScript_ParseArgs_Browser(t *testing.T) {
	s, _, _, exits := newTestScript(t)
	args, err := s.ParseArgs([]string{"-B", "chrome"})
	require.NoError(t, err)
	assert.Equal(t, "chrome", MustGet(args.Flags.GetString("browser")))
	assert.Empty(t, *exits)
}

func TestScript_ParseArgs_BadBrowser(t *testing.T) {
	s, _, errOut, exits := newTestScript(t)
	_, err := s.ParseArgs([]string{"-B", "safari"})
	assert.Error(t, err)
	assert.Equal(t, []int{2}, *exits)
	assert.Contains(t, errOut.String(), "safari")
}

func TestScript_ParseArgs_Help(t *testing.T) {
	s, _, errOut, exits := newTestScript(t)
	s.Describe("A script for testing").Epilog("See the manual for more.")
	require.NoError(t, s.AddSubcommand(&testSub{Stub: Stub{CommandName: "list", Short: "List stuff"}}))

	_, err := s.ParseArgs([]string{"--help"})
	assert.Error(t, err)
	assert.Equal(t, []int{0}, *exits)
	usage := errOut.String()
	assert.Contains(t, usage, "USAGE:")
	assert.Contains(t, usage, "A script for testing")
	assert.Contains(t, usage, "list")
	assert.Contains(t, usage, "See the manual for more.")
}

func TestScript_Redirect_Subprocess(t *testing.T) {
	s, out, errOut, _ := newTestScript(t)
	code, err := s.Execute(context.Background(), "sh", "-c", "echo visible; echo problem >&2")
	require.NoError(t, err)
	assert.Zero(t, code)
	assert.Equal(t, "visible\n", out.String())
	assert.Equal(t, "problem\n", errOut.String())
}

func TestScript_RedirectInput_Subprocess(t *testing.T) {
	s, out, _, _ := newTestScript(t)
	s.RedirectInput(strings.NewReader("piped\n"))
	code, err := s.Execute(context.Background(), "cat")
	require.NoError(t, err)
	assert.Zero(t, code)
	assert.Equal(t, "piped\n", out.String())
}

func TestScript_Message(t *testing.T) {
	s, out, errOut, _ := newTestScript(t)
	s.Message("hello")
	assert.Equal(t, "hello\n", out.String())

	s.Silence(true)
	s.Message("not shown")
	assert.Equal(t, "hello\n", out.String())

	s.Error("problem")
	assert.Equal(t, "problem\n", errOut.String())
}
