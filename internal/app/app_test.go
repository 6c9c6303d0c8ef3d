package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/phicalc/internal/errors"
	"github.com/agbru/phicalc/internal/estimator"
)

func TestNew_ParsesConfig(t *testing.T) {
	a, err := New([]string{"phicalc", "-n", "10", "-width", "int64", "-q"}, io.Discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Config.N != 10 {
		t.Errorf("N = %d, want 10", a.Config.N)
	}
	if a.Config.Width != "int64" {
		t.Errorf("Width = %q, want int64", a.Config.Width)
	}
	if a.Logger == nil {
		t.Error("a default logger should be installed")
	}
}

func TestNew_InvalidArgs(t *testing.T) {
	_, err := New([]string{"phicalc", "-n", "1"}, io.Discard)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestNew_Help(t *testing.T) {
	_, err := New([]string{"phicalc", "--help"}, io.Discard)
	if !IsHelpError(err) {
		t.Errorf("expected help error, got %v", err)
	}
	if IsHelpError(errors.New("boom")) {
		t.Error("IsHelpError should reject unrelated errors")
	}
	if !IsHelpError(flag.ErrHelp) {
		t.Error("IsHelpError should accept flag.ErrHelp")
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-n", "10"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), "phicalc") {
		t.Errorf("version banner = %q", buf.String())
	}
}

func TestRun_QuietEstimate(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	a, err := New([]string{"phicalc", "-n", "10", "-q"}, io.Discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 8 ratio lines plus terms, got %d:\n%s", len(lines), out.String())
	}
	if lines[0] != "2 1.0000000000000000" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[8] != "0 1 1 2 3 5 8 13 21 34" {
		t.Errorf("terms line = %q", lines[8])
	}
}

func TestRun_ComparisonReport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	a, err := New([]string{"phicalc", "-n", "10", "-terms"}, io.Discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}

	for _, want := range []string{
		"Comparison Summary",
		"Global Status: Success",
		"Convergence Report",
		"1.6190476190476191",
		"0 1 1 2 3 5 8 13 21 34",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestRun_BrokenDivision(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	a, err := New([]string{"phicalc", "-n", "10", "-q", "-broken", "-width", "int64"}, io.Discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	// Truncated division floors every estimate past i=3 to 1.
	if lines[0] != "2 1.0000000000000000" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "3 2.0000000000000000" {
		t.Errorf("second line = %q", lines[1])
	}
	if lines[7] != "9 1.0000000000000000" {
		t.Errorf("last ratio line = %q", lines[7])
	}
}

func TestRun_SavesReport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	path := t.TempDir() + "/report.txt"

	a, err := New([]string{"phicalc", "-n", "10", "-q", "-o", path}, io.Discard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if !strings.Contains(string(data), "# Golden Ratio Estimation Report") {
		t.Errorf("report file lacks header:\n%s", data)
	}
}

func TestFindBestResult(t *testing.T) {
	ok := &estimator.Estimation{Final: 1.6}
	wrapped := &estimator.Estimation{Final: -0.4, Overflowed: true}

	results := []estimator.Result{
		{Name: "int32", Estimation: wrapped, Duration: time.Millisecond},
		{Name: "big", Estimation: ok, Duration: 3 * time.Millisecond},
		{Name: "int64", Estimation: ok, Duration: 2 * time.Millisecond},
		{Name: "broken", Err: errors.New("boom")},
	}

	best := findBestResult(results)
	if best == nil || best.Name != "int64" {
		t.Errorf("best = %+v, want the fastest clean run (int64)", best)
	}

	if findBestResult(nil) != nil {
		t.Error("no results should yield no best")
	}
}
