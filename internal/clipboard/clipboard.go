// Package clipboard copies generated email text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("clipboard unavailable")

// Normalize trims trailing whitespace and converts line endings for the
// current platform.
func Normalize(text string) string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), " \t\n")
	if runtime.GOOS == "windows" {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

// Write copies text to the system clipboard.
func Write(text string) error {
	if !Available() {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(Normalize(text)); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Available checks if clipboard functionality is available.
// On Linux this requires xclip, xsel or wl-copy.
func Available() bool {
	return !clipboard.Unsupported
}
