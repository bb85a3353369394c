package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const ansiReset = "\x1b[0m"

// severity bundles the bracketed label and ANSI color for a status kind.
var severities = map[statusKind]struct {
	label string
	color string
}{
	statusInfo:  {label: "INFO", color: "\x1b[34m"},
	statusOK:    {label: "OK", color: "\x1b[32m"},
	statusWarn:  {label: "WARN", color: "\x1b[33m"},
	statusError: {label: "ERROR", color: "\x1b[31m"},
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	sev := severities[kind]
	detail := "[" + sev.label + "]"
	if message != "" {
		detail += " " + message
	}
	line := fmt.Sprintf("  %-20s %s", label+":", detail)
	if colorize && sev.color != "" {
		return sev.color + line + ansiReset
	}
	return line
}

func renderSectionHeader(title string, colorize bool) []string {
	head := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(head))
	if colorize {
		blue := severities[statusInfo].color
		head = blue + head + ansiReset
		rule = blue + rule + ansiReset
	}
	return []string{head, rule}
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
