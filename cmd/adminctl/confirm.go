package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptConfirmer asks for a y/N answer before a side-effect action.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(prompt string) bool {
	if p.out != nil {
		fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	}
	if p.in == nil {
		return false
	}
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// autoConfirmer satisfies --yes runs.
type autoConfirmer struct{}

func (autoConfirmer) Confirm(string) bool { return true }

// toastPrinter renders transient notifications on the console.
type toastPrinter struct {
	out io.Writer
}

func (t toastPrinter) Success(msg string) {
	fmt.Fprintf(t.out, "ok: %s\n", msg)
}

func (t toastPrinter) Error(msg string) {
	fmt.Fprintf(t.out, "error: %s\n", msg)
}
