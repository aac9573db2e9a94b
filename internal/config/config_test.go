package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mktcal.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != DefaultListen || cfg.WindowDays != DefaultWindowDays || cfg.LabelMax != DefaultLabelMax {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.BriefURL != DefaultBriefURL {
		t.Errorf("BriefURL = %q, want the brief form", cfg.BriefURL)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perms = %o, want 600", perm)
	}
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mktcal.yaml")
	body := []byte("events_file: data/events.csv\nwindow_days: -3\nreload: \"*/5 * * * *\"\nbasic_auth:\n  username: admin\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EventsFile != "data/events.csv" {
		t.Errorf("EventsFile = %q", cfg.EventsFile)
	}
	if cfg.CategoriesFile != DefaultCategoriesFile {
		t.Errorf("CategoriesFile = %q, want default", cfg.CategoriesFile)
	}
	if cfg.WindowDays != DefaultWindowDays {
		t.Errorf("WindowDays = %d, want %d", cfg.WindowDays, DefaultWindowDays)
	}
	if cfg.Reload != "*/5 * * * *" {
		t.Errorf("Reload = %q", cfg.Reload)
	}
	if cfg.BasicAuth != nil {
		t.Errorf("basic auth without password should be disabled, got %+v", cfg.BasicAuth)
	}
}

func TestLoadBriefURL(t *testing.T) {
	cases := map[string]string{
		"listen: 127.0.0.1:9000\n":               DefaultBriefURL,
		"brief_url: \"\"\n":                      "",
		"brief_url: https://example.com/brief\n": "https://example.com/brief",
	}
	for body, want := range cases {
		path := filepath.Join(t.TempDir(), "mktcal.yaml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("%q: %v", body, err)
		}
		if cfg.BriefURL != want {
			t.Errorf("%q: BriefURL = %q, want %q", body, cfg.BriefURL, want)
		}
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mktcal.yaml")
	if err := os.WriteFile(path, []byte("listen: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestResolvePaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CategoriesFile = "/abs/cats.csv"
	cfg.ResolvePaths("/etc/mktcal/config.yaml")

	if cfg.EventsFile != filepath.Join("/etc/mktcal", DefaultEventsFile) {
		t.Errorf("EventsFile = %q", cfg.EventsFile)
	}
	if cfg.CategoriesFile != "/abs/cats.csv" {
		t.Errorf("absolute path changed: %q", cfg.CategoriesFile)
	}
}

func TestLocationFallsBackToLocal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Not/AZone"
	if cfg.Location() != time.Local {
		t.Error("invalid timezone should fall back to time.Local")
	}
	cfg.Timezone = "UTC"
	if cfg.Location().String() != "UTC" {
		t.Errorf("Location = %s, want UTC", cfg.Location())
	}
}
