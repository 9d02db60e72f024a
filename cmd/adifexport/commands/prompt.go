package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/g3zod/adifexport/internal/logger"
)

// prompter answers the confirmation adif.Load asks for annotated
// specifications.
type prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	assumeYes   bool
}

// newPrompter reads answers from stdin when it is a terminal.
func newPrompter(assumeYes bool) *prompter {
	fd := os.Stdin.Fd()
	return &prompter{
		in:          os.Stdin,
		out:         os.Stderr,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		assumeYes:   assumeYes,
	}
}

// Confirm is an adif.ConfirmFunc. Without a terminal and without
// --yes the question is declined.
func (p *prompter) Confirm(message string) bool {
	if p.assumeYes {
		logger.Debug("confirmation assumed", "message", message)
		return true
	}
	if !p.interactive {
		logger.Warn("cannot ask for confirmation without a terminal, use --yes", "message", message)
		return false
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
