package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// FakeTool is a shell script standing in for adb or emulator. Every
// invocation appends its arguments to a log and prints the canned output.
type FakeTool struct {
	Path string
	log  string
}

// RequireShell aborts the calling test when /bin/sh is not present.
func RequireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("skipping: sh not available")
	}
}

// NewFakeTool writes an executable named name that prints stdout and exits
// with code.
func NewFakeTool(t *testing.T, name, stdout string, code int) *FakeTool {
	t.Helper()
	RequireShell(t)
	dir := t.TempDir()
	tool := &FakeTool{
		Path: filepath.Join(dir, name),
		log:  filepath.Join(dir, name+".calls"),
	}
	script := "#!/bin/sh\n" +
		fmt.Sprintf("printf '%%s\\n' \"$*\" >> %q\n", tool.log) +
		"cat <<'__FAKE_TOOL_EOF__'\n" + stdout + "\n__FAKE_TOOL_EOF__\n" +
		fmt.Sprintf("exit %d\n", code)
	if err := os.WriteFile(tool.Path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake %s: %v", name, err)
	}
	return tool
}

// Calls returns the argument lines of every invocation so far.
func (f *FakeTool) Calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.log)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read calls: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
