package slogutil

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"
)

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z \[info\] Scan completed \| files=12 matches=3\n$`)

func TestTextHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo).Info("Scan completed", "files", 12, "matches", 3)

	if !linePattern.MatchString(buf.String()) {
		t.Errorf("unexpected line: %q", buf.String())
	}
}

func TestTextHandler_Values(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"plain string", "Data/Orders.cs", "v=Data/Orders.cs"},
		{"string with space", `C:\My Projects\Shop`, `v="C:\\My Projects\\Shop"`},
		{"empty string", "", `v=""`},
		{"equals sign", "a=b", `v="a=b"`},
		{"bool", true, "v=true"},
		{"negative int", -4, "v=-4"},
		{"duration", 1500 * time.Millisecond, "v=1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, slog.LevelInfo).Info("m", "v", tt.value)
			if !strings.HasSuffix(buf.String(), "| "+tt.want+"\n") {
				t.Errorf("got %q, want suffix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTextHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Debug("parsed file")
	logger.Info("matched record")
	logger.Warn("slow parse")
	logger.Error("scan failed")

	out := buf.String()
	for _, dropped := range []string{"parsed file", "matched record"} {
		if strings.Contains(out, dropped) {
			t.Errorf("%q should be filtered", dropped)
		}
	}
	for _, kept := range []string{"[warn] slow parse", "[error] scan failed"} {
		if !strings.Contains(out, kept) {
			t.Errorf("missing %q in %q", kept, out)
		}
	}
}

func TestTextHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).With("run", "abc").WithGroup("file")

	logger.Info("Scanned file",
		"path", "Data/Orders.cs",
		slog.Group("matches", "method", 2, "creation", 1),
	)

	out := buf.String()
	for _, want := range []string{"run=abc", "file.path=Data/Orders.cs", "file.matches.method=2", "file.matches.creation=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "file.run") {
		t.Errorf("attrs added before the group must not be qualified: %q", out)
	}
}

func TestTextHandler_WithAttrsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, slog.LevelInfo).With("run", "abc")

	base.Info("first", "file", "A.cs")
	base.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.Contains(lines[1], "A.cs") {
		t.Errorf("record attrs leaked into the next line: %q", lines[1])
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LevelFromString(tt.input); got != tt.want {
				t.Errorf("LevelFromString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		quiet     bool
		want      slog.Level
	}{
		{0, false, slog.LevelWarn},
		{1, false, slog.LevelInfo},
		{2, false, slog.LevelDebug},
		{7, false, slog.LevelDebug},
		{2, true, LevelSilent},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity, tt.quiet); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d, %v) = %v, want %v", tt.verbosity, tt.quiet, got, tt.want)
		}
	}
}

func TestNewDiscardLogger(t *testing.T) {
	if NewDiscardLogger().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTeeHandler(t *testing.T) {
	var info, warn bytes.Buffer
	h1 := NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn})

	logger := slog.New(NewTeeHandler(h1, h2)).With("run", "r1")
	logger.Info("scan started")
	logger.Warn("slow parse")

	if !strings.Contains(info.String(), "scan started") || !strings.Contains(info.String(), "slow parse") {
		t.Errorf("info handler should get both records, got %q", info.String())
	}
	if strings.Contains(warn.String(), "scan started") {
		t.Error("warn handler should not get info records")
	}
	if !strings.Contains(warn.String(), "slow parse | run=r1") {
		t.Errorf("warn handler missing attrs: %q", warn.String())
	}
}

func TestTeeHandler_ReportsErrors(t *testing.T) {
	var ok bytes.Buffer
	tee := NewTeeHandler(
		NewTextHandler(failingWriter{}, nil),
		NewTextHandler(&ok, nil),
	)

	err := slog.New(tee).Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "m", 0))
	if err == nil {
		t.Fatal("expected the write error")
	}
	if !strings.Contains(ok.String(), "[info] m") {
		t.Error("a failing handler must not stop the others")
	}
}
