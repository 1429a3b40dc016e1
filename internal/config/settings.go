package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/panels-downloader/internal/http"
	"github.com/handiism/panels-downloader/internal/panels"
)

// Settings holds all configuration options.
type Settings struct {
	// Input and output
	ManifestPath  string `json:"manifest_path"`
	DownloadsPath string `json:"downloads_path"`

	// Download settings
	MaxConnectionsPerHost int `json:"max_connections_per_host"`
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`

	// Request headers
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer"`
	Accept    string `json:"accept"`
}

// DefaultSettings returns settings with default values.
//
// Downloads go to a "downloads" folder in the working directory.
func DefaultSettings() *Settings {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Settings{
		ManifestPath:  panels.DefaultManifestPath,
		DownloadsPath: filepath.Join(cwd, "downloads"),

		MaxConnectionsPerHost: http.DefaultMaxConnsPerHost,
		RequestTimeoutSeconds: int(http.DefaultTimeout / time.Second),

		UserAgent: http.DefaultUserAgent,
		Referer:   http.DefaultReferer,
		Accept:    http.DefaultAccept,
	}
}

// Load reads settings from a JSON file.
//
// A missing file yields the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, settings.Validate()
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the settings can be used for a run.
func (s *Settings) Validate() error {
	switch {
	case s.ManifestPath == "":
		return errors.New("manifest_path must not be empty")
	case s.DownloadsPath == "":
		return errors.New("downloads_path must not be empty")
	case s.MaxConnectionsPerHost < 1:
		return fmt.Errorf("max_connections_per_host must be at least 1, got %d", s.MaxConnectionsPerHost)
	case s.RequestTimeoutSeconds < 0:
		return fmt.Errorf("request_timeout_seconds must not be negative, got %d", s.RequestTimeoutSeconds)
	}
	return nil
}

// ToClientConfig converts settings to an http.ClientConfig.
//
// A RequestTimeoutSeconds of 0 disables the client timeout.
func (s *Settings) ToClientConfig() *http.ClientConfig {
	return &http.ClientConfig{
		UserAgent:       s.UserAgent,
		Referer:         s.Referer,
		Accept:          s.Accept,
		Timeout:         time.Duration(s.RequestTimeoutSeconds) * time.Second,
		MaxConnsPerHost: s.MaxConnectionsPerHost,
	}
}
