package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"login":                   {"whoami", "doctors list", "appointments list"},
	"register":                {"whoami", "doctors list"},
	"logout":                  {"login"},
	"whoami":                  {"profile update", "appointments list"},
	"doctors list":            {"doctors get <id>", "book"},
	"doctors get":             {"availability list <id>", "reviews list <id>", "book"},
	"book":                    {"appointments list"},
	"appointments list":       {"appointments cancel <id>", "appointments reschedule <id>"},
	"appointments set-status": {"appointments list", "dashboard"},
	"reviews create":          {"reviews list <doctorId>"},
	"availability add":        {"availability list <doctorId>"},
	"dashboard":               {"appointments list"},
}

// PrintHints prints "See also" hints for a command. No-op in quiet mode or if command has no hints.
func (p *Printer) PrintHints(command string) {
	if p.quiet {
		return
	}
	hints, ok := CommandHints[command]
	if !ok || len(hints) == 0 {
		return
	}

	cmds := make([]string, len(hints))
	for i, h := range hints {
		cmds[i] = "carectl " + h
	}
	fmt.Fprintf(p.out, "\nSee also: %s\n", strings.Join(cmds, ", "))
}
