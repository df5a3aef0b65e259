// Package cli parses the screensaver host's arguments and maps failures to
// process exit codes.
package cli

import (
	"fmt"
	"io"
	"strings"
)

// Mode selects how the screensaver runs.
type Mode int

const (
	// ModeScreensaver is fullscreen with logging disabled.
	ModeScreensaver Mode = iota
	// ModePreview is a small window with debug logging.
	ModePreview
)

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "screensaver"
}

// Preview reports whether logging and the windowed layout are enabled.
func (m Mode) Preview() bool { return m == ModePreview }

// ParseArgs reads the single mode switch, /s or /p, case-insensitively.
func ParseArgs(args []string) (Mode, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: got %d, want 1", ErrArgCount, len(args))
	}
	switch strings.ToLower(args[0]) {
	case "/s":
		return ModeScreensaver, nil
	case "/p":
		return ModePreview, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownArg, args[0])
	}
}

// PrintHelp writes the usage text.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `
  ~~ Help ~~
  FireworksGL screensaver
  Options:
      /s - Run in screensaver mode (fullscreen, logging disabled)
      /p - Run in preview mode (small window, logging enabled)
  Correct usage:
      fireworksgl /s
      fireworksgl /p

`)
}

// Run parses args, hands the mode to launch and returns the exit code for
// the outcome. Usage errors print help to stdout without calling launch.
func Run(args []string, stdout io.Writer, launch func(Mode) error) ExitCode {
	mode, err := ParseArgs(args)
	if err != nil {
		fmt.Fprintf(stdout, "Couldn't parse arguments: %v\n", err)
		PrintHelp(stdout)
		return ExitCodeFor(err)
	}
	if mode.Preview() {
		fmt.Fprintln(stdout, "Preview mode detected!")
	}

	if err := launch(mode); err != nil {
		code := ExitCodeFor(err)
		if mode.Preview() {
			fmt.Fprintf(stdout, "fireworksgl: %v (exit %d)\n", err, code)
		}
		return code
	}
	return ExitOK
}
