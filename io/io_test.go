package cmdio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

func TestWidth(t *testing.T) {
	tests := []struct {
		columns string
		want    int
	}{
		{"101", 101},
		{"wide", defaultWidth},
		{"-3", defaultWidth},
		{"", defaultWidth},
	}
	for _, tt := range tests {
		t.Run(tt.columns, func(t *testing.T) {
			t.Setenv("COLUMNS", tt.columns)
			if got := New().WithOut(&bytes.Buffer{}).Width(); got != tt.want {
				t.Fatalf("Width() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColorOverrides(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	m := New().WithOut(&bytes.Buffer{})

	if m.SupportsColor() {
		t.Fatal("non-terminal output should not support color")
	}
	if !m.ForceColor().SupportsColor() {
		t.Fatal("ForceColor should enable")
	}
	if m.NoColor().SupportsColor() {
		t.Fatal("NoColor should disable")
	}

	t.Setenv("FORCE_COLOR", "1")
	if !m.ColorAuto().SupportsColor() {
		t.Fatal("FORCE_COLOR should enable")
	}
	t.Setenv("NO_COLOR", "1")
	if m.SupportsColor() {
		t.Fatal("NO_COLOR should win over FORCE_COLOR")
	}
}

func TestStyles(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	m := New().WithOut(&bytes.Buffer{}).ForceColor()
	want := color.New(color.Bold)
	want.EnableColor()
	if out := m.Bold("x"); out != want.Sprint("x") || !strings.HasPrefix(out, "\x1b[1m") {
		t.Fatalf("missing ANSI: %q", out)
	}
	if out := m.Style(color.FgRed).Sprint("x"); out != "\x1b[31mx\x1b[0m" {
		t.Fatalf("red style = %q", out)
	}
	if out := m.NoColor().Bold("x"); out != "x" {
		t.Fatalf("expected plain text, got %q", out)
	}
}

func TestLoggerRouting(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var out, errOut bytes.Buffer
	log := NewLogger(New().WithOut(&out).WithErr(&errOut)).WithFormat(LogFormatTagged)

	log.Info("hello %s", "world")
	log.Error("boom")
	log.Warning("careful")

	if got := out.String(); got != "[INFO] hello world\n" {
		t.Fatalf("stdout = %q", got)
	}
	if got := errOut.String(); got != "[ERROR] boom\n[WARN] careful\n" {
		t.Fatalf("stderr = %q", got)
	}

	out.Reset()
	errOut.Reset()
	log.ErrorsToStderr(false).Error("inline")
	if out.String() != "[ERROR] inline\n" || errOut.Len() != 0 {
		t.Fatalf("expected error on stdout, got %q / %q", out.String(), errOut.String())
	}
}

func TestLoggerFormats(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		format LogFormat
		stamp  bool
		want   string
	}{
		{"plain", LogFormatPlain, false, "msg\n"},
		{"plain with time", LogFormatPlain, true, "[03:04:05] msg\n"},
		{"symbols", LogFormatSymbols, false, "✓ msg\n"},
		{"circles with time", LogFormatCircles, true, "🟢 [03:04:05] msg\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			log := NewLogger(New().WithOut(&out)).WithFormat(tt.format).WithTimestamp(tt.stamp)
			log.now = func() time.Time { return fixed }
			log.Success("msg")
			if out.String() != tt.want {
				t.Fatalf("got %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestLoggerColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var errOut bytes.Buffer
	log := NewLogger(New().WithErr(&errOut).WithOut(&bytes.Buffer{}).ForceColor()).WithFormat(LogFormatPlain)
	log.Error("red")
	if got := errOut.String(); !strings.HasPrefix(got, "\x1b[31m") {
		t.Fatalf("expected red escape, got %q", got)
	}
}

func TestLoggerBlankMessage(t *testing.T) {
	var out bytes.Buffer
	NewLogger(New().WithOut(&out)).Info("  ")
	if out.String() != "  \n" {
		t.Fatalf("got %q", out.String())
	}
}
