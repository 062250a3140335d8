package script

import (
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

// Status coerces an exit request of any type into a valid process status.
//
// Integers in [0,255] pass through verbatim, anything outside that range becomes 1.
// Booleans follow shell conventions: true is 0, false is 1.
// Strings are converted when they hold an in-range integer, and become 1 otherwise.
// A nil request is a clean exit. Any other type becomes 1.
func Status(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 0
		}
		return 1
	case int:
		return intStatus(v)
	case int8:
		return intStatus(int(v))
	case int16:
		return intStatus(int(v))
	case int32:
		return intStatus(int(v))
	case int64:
		return intStatus(int(v))
	case uint:
		return uintStatus(uint64(v))
	case uint8:
		return intStatus(int(v))
	case uint16:
		return intStatus(int(v))
	case uint32:
		return intStatus(int(v))
	case uint64:
		return uintStatus(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 1
		}
		return intStatus(parsed)
	default:
		return 1
	}
}

func intStatus(value int) int {
	if value < 0 || value > 255 {
		return 1
	}
	return value
}

// uintStatus guards the range before narrowing, since a large uint64 would overflow int.
func uintStatus(value uint64) int {
	if value > 255 {
		return 1
	}
	return int(value)
}

// Exit terminates the process with the coerced status after printing any messages and draining the script's worker group.
// Workers are stopped cooperatively and joined without a timeout, so a worker that ignores its context will hold up the exit.
func (s *Script) Exit(value any, messages ...string) {
	for _, msg := range messages {
		s.Message(msg)
	}
	if err := s.group.StopWait(); err != nil {
		s.logger.Error("worker shutdown", "err", err)
	}
	s.exit(Status(value))
}

// HandleInterrupt installs a SIGINT handler that quits the script cleanly with status 1, stopping the worker group on the way out.
func (s *Script) HandleInterrupt() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT)
	go func() {
		<-sigs
		signal.Stop(sigs)
		s.Exit(1)
	}()
}
