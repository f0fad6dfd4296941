// Package ui provides the console and terminal front ends for a session.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/gopher-go/internal/gopher"
)

const maxLineBytes = 1024 * 1024

var separator = strings.Repeat("=", 50)

// Responder answers one command line at a time. *gopher.Gopher implements it.
type Responder interface {
	Greeting() string
	Respond(input string) gopher.Reply
}

// RunConsole reads commands from in, one per line, and writes each reply to
// out between separator lines. It returns nil when the user says bye or in
// reaches EOF, and ctx.Err() when ctx is cancelled.
func RunConsole(ctx context.Context, r Responder, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writeBlock(out, r.Greeting())

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				return nil
			}
			reply := r.Respond(line)
			writeBlock(out, reply.Message)
			if reply.Exit {
				return nil
			}
		}
	}
}

func writeBlock(w io.Writer, msg string) {
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, msg)
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
