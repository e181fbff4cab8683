package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"wharf/internal/config"
)

func TestLoadDefaultConfigWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.HostEnv, "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Daemon.Host != config.DefaultHost() {
		t.Fatalf("unexpected host: %q", cfg.Daemon.Host)
	}
	if cfg.Daemon.HostName != "localhost" {
		t.Fatalf("unexpected host name: %q", cfg.Daemon.HostName)
	}
	if cfg.Timeout() != 0 {
		t.Fatalf("expected no timeout by default, got %s", cfg.Timeout())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestDefaultHostIsPlatformSpecific(t *testing.T) {
	want := "unix:///var/run/docker.sock"
	if runtime.GOOS == "windows" {
		want = "npipe:////./pipe/docker_engine"
	}
	if got := config.DefaultHost(); got != want {
		t.Fatalf("DefaultHost() = %q, want %q", got, want)
	}
}

func TestLoadReadsFileAndEnvOverridesHost(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "wharf.toml")

	cfgVal := config.Default()
	cfgVal.Daemon.Host = "unix:///run/user/1000/docker.sock"
	cfgVal.Daemon.TimeoutSeconds = 30
	cfgVal.Logging.Format = "JSON"
	cfgVal.Logging.Level = " Debug "
	data, err := toml.Marshal(cfgVal)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(config.HostEnv, "")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected to load %s, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Daemon.Host != "unix:///run/user/1000/docker.sock" {
		t.Fatalf("expected host from file, got %q", cfg.Daemon.Host)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Timeout())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %+v", cfg.Logging)
	}

	t.Setenv(config.HostEnv, "tcp://127.0.0.1:2375")
	cfg, _, _, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load with env: %v", err)
	}
	if cfg.Daemon.Host != "tcp://127.0.0.1:2375" {
		t.Fatalf("expected DOCKER_HOST to win, got %q", cfg.Daemon.Host)
	}
	ep, err := cfg.Endpoint()
	if err != nil {
		t.Fatalf("Endpoint: %v", err)
	}
	if ep.Address != "127.0.0.1:2375" {
		t.Fatalf("unexpected endpoint %+v", ep)
	}
}

func TestLoadHostOptionBeatsInvalidEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.HostEnv, "ftp://not-a-daemon")
	path := filepath.Join(t.TempDir(), "config.toml")

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected invalid DOCKER_HOST to fail without an override")
	}
	cfg, _, _, err := config.Load(path, config.WithHost("unix:///run/user/1000/docker.sock"))
	if err != nil {
		t.Fatalf("Load with host override: %v", err)
	}
	if cfg.Daemon.Host != "unix:///run/user/1000/docker.sock" {
		t.Fatalf("expected override host, got %q", cfg.Daemon.Host)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.HostEnv, "")
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad scheme", content: "[daemon]\nhost = \"ftp://example\"\n", want: "daemon.host"},
		{name: "negative timeout", content: "[daemon]\ntimeout_seconds = -1\n", want: "timeout_seconds"},
		{name: "bad format", content: "[logging]\nformat = \"xml\"\n", want: "logging.format"},
		{name: "bad level", content: "[logging]\nlevel = \"loud\"\n", want: "logging.level"},
		{name: "unknown key", content: "[daemon]\nsocket = \"/tmp/x\"\n", want: "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.HostEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Daemon.Host != "unix:///var/run/docker.sock" {
		t.Fatalf("unexpected sample host %q", cfg.Daemon.Host)
	}
}

func TestCreateSampleRefusesWhileLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	held := flock.New(path + ".lock")
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected CreateSample to fail while the lock is held")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no config file, stat err=%v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/logs/wharf.log")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "logs", "wharf.log") {
		t.Fatalf("unexpected expansion %q", got)
	}
}
