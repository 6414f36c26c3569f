package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/typescatter/pkg/errors"
)

func TestRootCommandSubcommands(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()

	want := []string{"render", "print", "live", "serve", "cache", "version", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered (err=%v)", name, err)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(t, c, "version"); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "commit", "built"} {
		if !strings.Contains(out.String(), key) {
			t.Errorf("version output missing %q: %s", key, out.String())
		}
	}
}

func TestExplicitConfigMissing(t *testing.T) {
	c, _ := newTestCLI(t)
	err := execute(t, c, "--config", filepath.Join(t.TempDir(), "missing.toml"), "version")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestConfigWidthApplies(t *testing.T) {
	c, out := newTestCLI(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("width = 512\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, c, "--config", cfg, "render", "--no-shapes", "--no-cache", "-f", "svg", "hello"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `viewBox="0 0 512 `) {
		t.Errorf("svg does not use configured width: %.120s", out.String())
	}
}

func TestCacheCommands(t *testing.T) {
	c, out := newTestCLI(t)
	dir := filepath.Join(t.TempDir(), "assets")
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, c, "--config", cfg, "cache", "path"); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", out.String(), dir)
	}

	stale := filepath.Join(dir, "ab", "entry.json")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := execute(t, c, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("cache entry survived clear: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := execute(t, c, "--config", cfg, "cache", "info"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "entries") || !strings.Contains(out.String(), "0 B") {
		t.Errorf("info output = %q", out.String())
	}
}

func TestCacheCommandsNeedFileBackend(t *testing.T) {
	c, _ := newTestCLI(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := execute(t, c, "--config", cfg, "cache", "clear")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestFmtBytes(t *testing.T) {
	tests := map[int64]string{0: "0 B", 512: "512 B", 1536: "1.5 KiB", 5 << 20: "5.0 MiB"}
	for n, want := range tests {
		if got := fmtBytes(n); got != want {
			t.Errorf("fmtBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestPrintCommandOutput(t *testing.T) {
	c, _ := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "print.html")
	if err := execute(t, c, "print", "--no-shapes", "--no-cache", "-o", path, "print", "me"); err != nil {
		t.Fatal(err)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<!doctype html>", `class="print-canvas"`, `class="answer-block"`, "window.print()"} {
		if !strings.Contains(string(doc), want) {
			t.Errorf("print document missing %q", want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(t, c, "completion", "bash"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "typescatter") {
		t.Error("bash completion does not mention the command name")
	}
}
