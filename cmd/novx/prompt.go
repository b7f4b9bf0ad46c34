package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
)

// terminalUI asks questions on the terminal and prints status lines.
type terminalUI struct {
	in          io.ReadCloser
	out         io.Writer
	yes         bool
	interactive bool
}

func newTerminalUI(in *os.File, out io.Writer, yes bool) *terminalUI {
	return &terminalUI{
		in:          in,
		out:         out,
		yes:         yes,
		interactive: term.IsTerminal(int(in.Fd())),
	}
}

// Ask returns true for "y" or "yes". Without a terminal it answers no
// unless --yes was given.
func (u *terminalUI) Ask(question string) bool {
	if u.yes {
		return true
	}
	if !u.interactive {
		slog.Debug("no terminal, declining", "question", question)
		return false
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          question + " [y/N]: ",
		Stdin:           u.in,
		Stdout:          u.out,
		InterruptPrompt: "^C",
	})
	if err != nil {
		slog.Warn("initializing prompt", "error", err)
		return false
	}
	defer rl.Close()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return false
	}
	if err != nil {
		slog.Warn("reading answer", "error", err)
		return false
	}
	return isYes(line)
}

// SetStatus prints the status line. Errors go through the logger too.
func (u *terminalUI) SetStatus(message string) {
	fmt.Fprintln(u.out, message)
	if errs.IsError(message) {
		slog.Debug("status", "message", message)
	}
}

func isYes(answer string) bool {
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
