package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "phicalc"
	if runtime.GOOS == "windows" {
		binName = "phicalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs from test/e2e; build from the module root.
	rootDir := "../.."

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/phicalc")
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build phicalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Quiet Report",
			args:     []string{"-n", "10", "-q"},
			wantOut:  "0 1 1 2 3 5 8 13 21 34",
			wantCode: 0,
		},
		{
			name:     "Quiet Final Ratio",
			args:     []string{"-n", "10", "-q", "-width", "int64"},
			wantOut:  "9 1.6190476190476191",
			wantCode: 0,
		},
		{
			name:     "Comparison Mode",
			args:     []string{"-n", "30"},
			wantOut:  "Global Status: Success",
			wantCode: 0,
		},
		{
			name:     "Convergence To Phi",
			args:     []string{"-n", "50", "-q", "-width", "big"},
			wantOut:  "49 1.6180339887498949",
			wantCode: 0,
		},
		{
			name:     "Broken Division",
			args:     []string{"-n", "10", "-q", "-broken", "-width", "int64"},
			wantOut:  "9 1.0000000000000000",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "phicalc",
			wantCode: 0,
		},
		{
			name:     "Invalid N",
			args:     []string{"-n", "1"},
			wantOut:  "",
			wantCode: 1,
		},
		{
			name:     "Unknown Width",
			args:     []string{"-width", "int128"},
			wantOut:  "",
			wantCode: 1,
		},
		{
			name:     "Int32 Overflow Refused",
			args:     []string{"-n", "48", "-width", "int32", "-q"},
			wantOut:  "",
			wantCode: 1,
		},
		{
			name:     "Int32 Overflow Demonstration",
			args:     []string{"-n", "48", "-width", "int32", "-allow-overflow", "-terms"},
			wantOut:  "-1323752223",
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				// Expect a non-zero exit code
				if err == nil {
					t.Errorf("Expected non-zero exit code, but command succeeded.\nOutput: %s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tt.wantCode {
						t.Logf("Exit code mismatch: got %d, want %d (accepting any non-zero)",
							exitErr.ExitCode(), tt.wantCode)
					}
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
