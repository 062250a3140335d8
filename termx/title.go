package termx

import (
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/term"
)

// TitleTerms lists the TERM values known to honor the title escape sequence, and can be extended by the host program.
var TitleTerms = []string{"xterm", "xterm-debian"}

// MaxTitleLength is the number of characters a title is clipped to before being written.
const MaxTitleLength = 74

// SetTitle updates the terminal title bar with value, clipped to [MaxTitleLength] characters.
// Nothing is written unless TERM is in [TitleTerms] and stderr is attached to a terminal.
func SetTitle(value string) {
	if !TitleSupported(os.Getenv("TERM")) {
		return
	}
	ForceTitle(value)
}

// ForceTitle is [SetTitle] without the TERM check, for terminals that support titles under an unlisted TERM value.
func ForceTitle(value string) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}
	_ = WriteTitle(os.Stderr, value)
}

// TitleSupported reports whether the given TERM value is expected to honor title escapes.
func TitleSupported(termValue string) bool {
	return slices.Contains(TitleTerms, termValue)
}

// WriteTitle writes the clipped title escape sequence to w unconditionally.
// Most callers want the gating behavior of [SetTitle] instead.
func WriteTitle(w io.Writer, value string) error {
	if runes := []rune(value); len(runes) > MaxTitleLength {
		value = string(runes[:MaxTitleLength])
	}
	_, err := fmt.Fprintf(w, "\033]2;%s\a", value)
	return err
}
