package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Streams used by the print helpers and Confirm. Tests swap them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// SetStreams redirects the helpers' input and output.
func SetStreams(in io.Reader, out, errOut io.Writer) {
	stdin, stdout, stderr = in, out, errOut
}

// Confirm prompts the user for confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(stdout, prompt+suffix)

	reader := bufio.NewReader(stdin)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

func printTagged(w io.Writer, symbol, plain, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "%s: %s\n", plain, msg)
		return
	}
	fmt.Fprintf(w, "%s %s\n", symbol, msg)
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		printTagged(stdout, "✓", "OK", format, args...)
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		printTagged(stdout, "ℹ", "INFO", format, args...)
	}
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	printTagged(stderr, "⚠", "WARNING", format, args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	printTagged(stderr, "✗", "ERROR", format, args...)
}

// Global flags (will be set from cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}
