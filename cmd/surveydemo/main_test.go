package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DaanHessen/survey-demo-tui/internal/util"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "surveydemo "+Version) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	if _, err := execute(t, "migrate", "sideways"); err == nil {
		t.Fatal("expected error for unknown migrate direction")
	}
}

func TestRunRequiresEnvironmentID(t *testing.T) {
	t.Setenv(util.EnvEnvironmentID, "")
	t.Setenv(util.EnvPublicEnvironmentID, "")
	cfg := filepath.Join(t.TempDir(), "none.yml")
	_, err := execute(t, "--config", cfg, "--offline", "--env-id", "")
	if err == nil || !strings.Contains(err.Error(), "environment id is required") {
		t.Fatalf("expected missing environment id error, got %v", err)
	}
}
