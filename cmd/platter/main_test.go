package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	galleryDir string
	outputDir  string
	dataDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		galleryDir: filepath.Join(base, "gallery"),
		outputDir:  filepath.Join(base, "out"),
		dataDir:    filepath.Join(base, "data"),
	}
	if err := os.MkdirAll(env.galleryDir, 0o755); err != nil {
		t.Fatal(err)
	}

	content := fmt.Sprintf(`[paths]
gallery_dir = %q
output_dir = %q
data_dir = %q
log_dir = %q
cache_dir = %q
`,
		env.galleryDir,
		env.outputDir,
		env.dataDir,
		filepath.Join(base, "logs"),
		filepath.Join(base, "cache"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return env
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeJPEG(t *testing.T, path string, c color.Color) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
}

func TestRootHelpListsCommands(t *testing.T) {
	out, _, err := runCLI(t, "", "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"ads", "store", "covers", "config"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("help output missing %q: %s", want, out)
		}
	}
}

func TestMissingExplicitConfigErrors(t *testing.T) {
	_, _, err := runCLI(t, filepath.Join(t.TempDir(), "absent.toml"), "store", "build")
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}
