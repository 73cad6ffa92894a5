package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "itinfra dev") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMigrateList(t *testing.T) {
	out, err := run(t, "migrate", "--list")
	if err != nil {
		t.Fatalf("migrate --list: %v", err)
	}
	lines := strings.Fields(out)
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "0001") {
		t.Fatalf("unexpected migrations %q", out)
	}
}

func TestMigrateRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "")
	if _, err := run(t, "--config", "testdata/missing.yaml", "migrate"); err == nil {
		t.Fatalf("expected migrate without a database to fail")
	}
}

func TestRejectsUnknownCommand(t *testing.T) {
	if _, err := run(t, "frobnicate"); err == nil {
		t.Fatalf("expected unknown command to fail")
	}
}
