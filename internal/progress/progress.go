// Package progress renders spinner-based progress for long provisioning
// steps, degrading to plain messages when stdout is not a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Capabilities encapsulates detected terminal features
type Capabilities struct {
	// IsTTY indicates whether stdout is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
}

// Symbols defines the character set for visual indicators
type Symbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}

// Detect detects terminal features and returns capabilities
func Detect() Capabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("AGENTUP_ASCII") == "1"

	return Capabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities
func SelectSymbols(caps Capabilities) Symbols {
	if caps.SupportsUnicode {
		return Symbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return Symbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}

// Display shows one step at a time with a spinner in TTY mode
type Display struct {
	capabilities Capabilities
	spinner      *spinner.Spinner
	symbols      Symbols
	out          io.Writer
}

// NewDisplay creates a new display with the given terminal capabilities
func NewDisplay(caps Capabilities) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          os.Stdout,
	}
}

// Start begins displaying progress for a step
func (d *Display) Start(msg string) {
	if d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		d.spinner.Writer = os.Stderr // avoid interleaving with child output on stdout
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
	} else {
		fmt.Fprintln(d.out, msg)
	}
}

// Complete stops the spinner and displays completion status
func (d *Display) Complete(msg string) {
	d.Stop()
	fmt.Fprintf(d.out, "%s %s\n", d.symbols.Checkmark, msg)
}

// Fail stops the spinner and displays failure status
func (d *Display) Fail(msg string, err error) {
	d.Stop()
	fmt.Fprintf(d.out, "%s %s: %v\n", d.symbols.Failure, msg, err)
}

// Stop stops the spinner without showing completion/failure
func (d *Display) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
