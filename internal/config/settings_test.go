package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/handiism/panels-downloader/internal/http"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.ManifestPath != "media-1a-i-p~s.json" {
		t.Errorf("ManifestPath = %q", s.ManifestPath)
	}
	if filepath.Base(s.DownloadsPath) != "downloads" {
		t.Errorf("DownloadsPath = %q, want a downloads folder", s.DownloadsPath)
	}
	if s.MaxConnectionsPerHost != 5 {
		t.Errorf("MaxConnectionsPerHost = %d, want 5", s.MaxConnectionsPerHost)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.MaxConnectionsPerHost != 5 {
		t.Errorf("MaxConnectionsPerHost = %d, want 5", s.MaxConnectionsPerHost)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"max_connections_per_host": 2, "request_timeout_seconds": 30}`), 0644)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.MaxConnectionsPerHost != 2 || s.RequestTimeoutSeconds != 30 {
		t.Errorf("got %+v, want overrides applied", s)
	}
	if s.Referer != http.DefaultReferer {
		t.Errorf("Referer = %q, want default", s.Referer)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad json", `{"manifest_path": `},
		{"zero connections", `{"max_connections_per_host": 0}`},
		{"empty manifest", `{"manifest_path": ""}`},
		{"negative timeout", `{"request_timeout_seconds": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			os.WriteFile(path, []byte(tt.json), 0644)
			if _, err := Load(path); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestSettings_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s := DefaultSettings()
	s.DownloadsPath = "/srv/wallpapers"
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DownloadsPath != "/srv/wallpapers" {
		t.Errorf("DownloadsPath = %q, want %q", loaded.DownloadsPath, "/srv/wallpapers")
	}
}

func TestSettings_ToClientConfig(t *testing.T) {
	s := DefaultSettings()
	s.RequestTimeoutSeconds = 30
	s.MaxConnectionsPerHost = 3

	cfg := s.ToClientConfig()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxConnsPerHost != 3 {
		t.Errorf("MaxConnsPerHost = %d, want 3", cfg.MaxConnsPerHost)
	}
	if cfg.UserAgent != http.DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
}
