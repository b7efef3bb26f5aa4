package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndPath(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// Refuses to overwrite without the flag.
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error on existing config")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, "", "config", "path", "--config", target)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != target {
		t.Fatalf("config path = %q, want %q", strings.TrimSpace(out), target)
	}
}

func TestConfigShowRedactsToken(t *testing.T) {
	env := setupCLITestEnv(t)
	content := `[discogs]
token = "abcdefgh"
username = "crate-digger"
`
	data, err := os.ReadFile(env.configPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.configPath, append(data, []byte(content)...), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, env.configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "abcdefgh") {
		t.Fatalf("token leaked: %s", out)
	}
	if !strings.Contains(out, "crate-digger") || !strings.Contains(out, "sale_folder_prefix") {
		t.Fatalf("unexpected output: %s", out)
	}
}
