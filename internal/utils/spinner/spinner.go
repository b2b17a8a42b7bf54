package spinner

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// StartSpinner starts a terminal spinner on stderr with the given message.
// Returns a stop function to halt and clear the spinner.
//
// When stderr is not a terminal no spinner is drawn and stop does nothing,
// so piped output stays clean.
//
//	stop := spinner.StartSpinner("Sampling CPU usage")
//	usage, err := general.CPUUsage()
//	stop()
func StartSpinner(message string) func() {
	return Start(os.Stderr, isTerminal(os.Stderr), message)
}

// Start is StartSpinner with an explicit writer and terminal decision.
func Start(w io.Writer, interactive bool, message string) func() {
	if !interactive {
		return func() {}
	}

	// CharSets[14] is the braille dot set.
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()

	return s.Stop
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
