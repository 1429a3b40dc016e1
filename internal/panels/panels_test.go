package panels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_Parse(t *testing.T) {
	manifestJSON := `{
		"version": 1,
		"data": {
			"1": {"dhd": "https://h/a~bob_99/My~Art.png", "dsd": "https://h/a~bob_99/small.png"},
			"2": {"dsd": "https://h/a~amy_1/Sky.jpg"},
			"3": {"title": "no images"},
			"4": "not an object",
			"5": {"dhd": 42, "dsd": "https://h/a~cat_2/Sea.webp"}
		}
	}`

	manifest, err := NewLoader().Parse([]byte(manifestJSON))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(manifest.Entries) != 4 {
		t.Errorf("entry count = %d, want 4", len(manifest.Entries))
	}
	if manifest.Invalid != 1 {
		t.Errorf("Invalid = %d, want 1", manifest.Invalid)
	}

	if got := manifest.Entries["1"].HD; got != "https://h/a~bob_99/My~Art.png" {
		t.Errorf("Entries[1].HD = %q", got)
	}
	if got := manifest.Entries["2"].HD; got != "" {
		t.Errorf("Entries[2].HD = %q, want empty", got)
	}
	if got := manifest.Entries["3"]; got.HD != "" || got.SD != "" {
		t.Errorf("Entries[3] = %+v, want no URLs", got)
	}
	if got := manifest.Entries["5"]; got.HD != "" || got.SD != "https://h/a~cat_2/Sea.webp" {
		t.Errorf("Entries[5] = %+v, want SD only", got)
	}
}

func TestLoader_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{"empty data", `{"data": {}}`, ErrManifestEmpty},
		{"empty data with spaces", `{"data": { }}`, ErrManifestEmpty},
		{"missing data", `{"other": 1}`, ErrManifestEmpty},
		{"null data", `{"data": null}`, ErrManifestEmpty},
		{"empty list data", `{"data": []}`, ErrManifestEmpty},
		{"null document", `null`, ErrManifestEmpty},
		{"invalid json", `{"data": `, ErrManifestMalformed},
		{"top level array", `[1, 2]`, ErrManifestMalformed},
		{"data is a list", `{"data": [{"dhd": "x"}]}`, ErrManifestMalformed},
		{"data is a string", `{"data": "abc"}`, ErrManifestMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Parse([]byte(tt.json))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultManifestPath)
	if err := os.WriteFile(path, []byte(`{"data": {"x": {"dhd": "https://h/a~bob_99/My~Art.png"}}}`), 0644); err != nil {
		t.Fatal(err)
	}

	manifest, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(manifest.Entries) != 1 {
		t.Errorf("entry count = %d, want 1", len(manifest.Entries))
	}

	if _, err := NewLoader().LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want os.ErrNotExist", err)
	}
}
