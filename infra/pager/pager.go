package pager

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvPager prepares an external pager command using $PAGER (fallback: "less").
// It does NOT run the pager itself; callers use tea.ExecProcess with the
// returned *exec.Cmd so Bubble Tea properly suspends raw terminal mode.
type EnvPager struct{}

// NewEnvPager creates an EnvPager.
func NewEnvPager() *EnvPager {
	return &EnvPager{}
}

// Cmd writes content to a temp file and prepares the pager to show it.
// Remove the file with Cleanup once the pager exits.
func (p *EnvPager) Cmd(content string) (*exec.Cmd, string, error) {
	args := strings.Fields(os.Getenv("PAGER"))
	if len(args) == 0 {
		args = []string{"less", "-R"}
	}

	tmpFile, err := os.CreateTemp("", "terminalthread-*.txt")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	cmd := exec.Command(args[0], append(args[1:], tmpPath)...)
	return cmd, tmpPath, nil
}

// Cleanup removes a temp file created by Cmd.
func Cleanup(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing temp file: %w", err)
	}
	return nil
}
