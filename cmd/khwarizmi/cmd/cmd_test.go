package cmd

import (
	"bytes"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
)

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "khwarizmi.toml")
	content := `[general]
data_dir = "` + dir + `"

[history]
path = "` + filepath.Join(dir, "history.db") + `"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	solveSteps, solveJSON, historyJSON, historyLimit = false, false, false, 0
	solveRemote, historyRemote = "", ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	cfg := writeConfig(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"solve", "2x+3=7"}, "x = 2\n"},
		{[]string{"solve", "2x", "+", "3", "=", "8"}, "x = 2.5\n"},
		{[]string{"solve"}, "Missing input\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := run(t, append([]string{"--config", cfg}, tt.args...)...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSolveCommand_Error(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t), "solve", "2x+3")
	if !mdwerror.HasCode(err, mdwerror.CodeNoEqualsSign) {
		t.Errorf("Execute() error = %v, want NO_EQUALS_SIGN", err)
	}
}

func TestSolveCommand_RemoteUnreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := lis.Addr().String()
	lis.Close()

	_, err = run(t, "--config", writeConfig(t), "solve", "--remote", addr, "x=1")
	if !mdwerror.HasCode(err, mdwerror.CodeServiceUnavailable) {
		t.Errorf("Execute() error = %v, want SERVICE_UNAVAILABLE", err)
	}
	if err != nil && !strings.Contains(err.Error(), addr) {
		t.Errorf("error %q does not name %s", err, addr)
	}
}

func TestSolveCommand_JSONAndSteps(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, "--config", cfg, "solve", "--json", "10/x=2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var resp service.SolveResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v (%s)", err, out)
	}
	if resp.Output != "x = 5" || len(resp.Steps) != 2 {
		t.Errorf("response = %+v", resp)
	}

	out, err = run(t, "--config", cfg, "solve", "--steps", "10/x=2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "x = 5") || !strings.Contains(out, "1.") {
		t.Errorf("steps output = %q", out)
	}
}

func TestHistoryCommand(t *testing.T) {
	cfg := writeConfig(t)

	run(t, "--config", cfg, "solve", "x=1")
	run(t, "--config", cfg, "solve", "x+y=1")

	out, err := run(t, "--config", cfg, "history")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "MULTIPLE_VARIABLES") || !strings.Contains(out, "x = 1") {
		t.Errorf("history output = %q", out)
	}
	if strings.Index(out, "x+y=1") > strings.Index(out, "x=1 ") {
		t.Errorf("history should list newest first: %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t), "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "khwarizmi v") {
		t.Errorf("output = %q", out)
	}
}
