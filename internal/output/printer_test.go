package output

import (
	"bytes"
	"strings"
	"testing"
)

func testPrinter(useColors, quiet bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errBuf bytes.Buffer
	return &Printer{out: &out, err: &errBuf, useColors: useColors, quiet: quiet}, &out, &errBuf
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{"auto", ColorAuto, false},
		{"always", ColorAlways, false},
		{"never", ColorNever, false},
		{"rainbow", ColorAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestResolveColors(t *testing.T) {
	if ResolveColors(ColorAlways, false) != true {
		t.Error("always must win over config")
	}
	if ResolveColors(ColorNever, true) != false {
		t.Error("never must win over config")
	}

	t.Setenv("NO_COLOR", "1")
	if ResolveColors(ColorAuto, true) != false {
		t.Error("NO_COLOR must disable colors in auto mode")
	}
}

func TestPrinter_QuietSuppressesInfoButNotError(t *testing.T) {
	p, out, errBuf := testPrinter(false, true)

	p.Info("hello")
	p.Success("done")
	p.Print("plain")
	if out.Len() != 0 {
		t.Errorf("quiet printer wrote to stdout: %q", out.String())
	}

	p.Error("broke")
	if !strings.Contains(errBuf.String(), "broke") {
		t.Errorf("errors must come through in quiet mode, got %q", errBuf.String())
	}
}

func TestPrinter_PlainMarkers(t *testing.T) {
	p, out, errBuf := testPrinter(false, false)

	p.Success("saved")
	if !strings.Contains(out.String(), "[OK] saved") {
		t.Errorf("stdout = %q", out.String())
	}

	p.Warning("careful")
	p.Error("broke")
	if !strings.Contains(errBuf.String(), "[WARN] careful") || !strings.Contains(errBuf.String(), "[ERROR] broke") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestStatusBadge_NoColors(t *testing.T) {
	p, _, _ := testPrinter(false, false)
	for _, status := range []string{"pending", "confirmed", "cancelled", "completed"} {
		want := "[" + status + "]"
		if got := p.StatusBadge(status); got != want {
			t.Errorf("StatusBadge(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestBoldDim_NoColorsPassThrough(t *testing.T) {
	p, _, _ := testPrinter(false, false)
	if p.Bold("x") != "x" || p.Dim("x") != "x" {
		t.Error("without colors text must pass through unchanged")
	}
}

func TestFormatError(t *testing.T) {
	p, _, errBuf := testPrinter(false, false)
	p.FormatError(&CLIError{
		Summary:    "booking failed",
		Detail:     "slot already booked",
		Suggestion: "pick another slot with 'carectl availability list'",
		ExitCode:   ExitAPIError,
	})

	got := errBuf.String()
	for _, want := range []string{"[ERROR] booking failed", "Cause: slot already booked", "Suggestion:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestPrintHints(t *testing.T) {
	p, out, _ := testPrinter(false, false)
	p.PrintHints("login")
	if !strings.Contains(out.String(), "carectl whoami") {
		t.Errorf("hints output = %q", out.String())
	}

	out.Reset()
	p.PrintHints("no-such-command")
	if out.Len() != 0 {
		t.Errorf("unknown command produced hints: %q", out.String())
	}

	quiet, qout, _ := testPrinter(false, true)
	quiet.PrintHints("login")
	if qout.Len() != 0 {
		t.Errorf("quiet mode produced hints: %q", qout.String())
	}
}
