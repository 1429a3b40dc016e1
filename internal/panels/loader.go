package panels

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/handiism/panels-downloader/internal/model"
	"github.com/handiism/panels-downloader/internal/panels/dto"
)

// DefaultManifestPath is the manifest file name the service publishes.
const DefaultManifestPath = "media-1a-i-p~s.json"

var (
	// ErrManifestEmpty is returned when the manifest has no usable "data" section.
	ErrManifestEmpty = errors.New(`manifest does not have a "data" property at its root`)

	// ErrManifestMalformed is returned when the manifest is not valid JSON or
	// its "data" section is not an object.
	ErrManifestMalformed = errors.New("malformed manifest")
)

// Loader parses media manifests.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile reads and parses the manifest at path.
func (l *Loader) LoadFile(path string) (*model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return l.Parse(data)
}

// Parse parses manifest JSON.
//
// Returns ErrManifestEmpty if "data" is missing, null, or holds nothing, and
// ErrManifestMalformed if the document cannot be decoded. Values of "data"
// that are not objects are counted in Manifest.Invalid and otherwise ignored.
func (l *Loader) Parse(data []byte) (*model.Manifest, error) {
	var raw dto.JSONManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestMalformed, err)
	}

	if isEmptyValue(raw.Data) {
		return nil, ErrManifestEmpty
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw.Data, &values); err != nil {
		return nil, fmt.Errorf(`%w: "data" is not an object: %v`, ErrManifestMalformed, err)
	}
	if len(values) == 0 {
		return nil, ErrManifestEmpty
	}

	manifest := &model.Manifest{Entries: make(map[string]model.Entry, len(values))}
	for key, value := range values {
		var entry dto.JSONEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			manifest.Invalid++
			continue
		}
		manifest.Entries[key] = entry.ToEntry()
	}

	return manifest, nil
}

// isEmptyValue reports whether raw is absent or a JSON value with no content.
func isEmptyValue(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "{}", "[]", `""`, "0", "false":
		return true
	}
	return false
}
