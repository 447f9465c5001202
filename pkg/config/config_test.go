package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("InitConfig on missing file (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(cfg, reloaded); diff != "" {
		t.Errorf("saved and reloaded config differ (-saved +loaded):\n%s", diff)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[shell]
prompt = "sub> "
history = false

[log]
level = "debug"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	want.Shell.Prompt = "sub> "
	want.Shell.History = false
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[server]
max_limit = "lots"
max_prefix = 30

[shell]
prompt = "$ "
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.MaxLimit != 64 {
		t.Errorf("MaxLimit = %d, want default 64", cfg.Server.MaxLimit)
	}
	if cfg.Server.MaxPrefix != 30 {
		t.Errorf("MaxPrefix = %d, want 30", cfg.Server.MaxPrefix)
	}
	if cfg.Shell.Prompt != "$ " {
		t.Errorf("Prompt = %q, want %q", cfg.Shell.Prompt, "$ ")
	}
}

func TestLoadConfigUnparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[shell\nprompt = ")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("broken file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadConfigWithPriority(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	xdg.Reload()

	custom := filepath.Join(tmpDir, "custom.toml")
	writeFile(t, custom, "[log]\nlevel = \"info\"\n")

	cfg, path := LoadConfigWithPriority("demo", custom)
	if path != custom || cfg.Log.Level != "info" {
		t.Errorf("custom config not used: path=%q level=%q", path, cfg.Log.Level)
	}

	cfg, path = LoadConfigWithPriority("demo", filepath.Join(tmpDir, "missing.toml"))
	want := filepath.Join(tmpDir, "xdg", "demo", "config.toml")
	if path != want {
		t.Errorf("fallback path = %q, want %q", path, want)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("fallback config (-want +got):\n%s", diff)
	}
}

func TestHistoryPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)
	xdg.Reload()

	shell := DefaultConfig().Shell
	if got, want := shell.HistoryPath("demo"), filepath.Join(tmpDir, "demo", "history"); got != want {
		t.Errorf("HistoryPath = %q, want %q", got, want)
	}

	shell.HistoryFile = "/var/tmp/hist"
	if got := shell.HistoryPath("demo"); got != "/var/tmp/hist" {
		t.Errorf("HistoryPath with explicit file = %q", got)
	}
}
