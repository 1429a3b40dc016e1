package model

import (
	"fmt"
	"sort"
)

// Resolution identifies which image variant of an entry was selected.
type Resolution int

const (
	// ResolutionHD is the high-definition variant (the "dhd" manifest field).
	ResolutionHD Resolution = iota

	// ResolutionSD is the standard-definition variant (the "dsd" manifest field).
	ResolutionSD
)

// String returns the tag used in output filenames: "HD" or "SD".
func (r Resolution) String() string {
	switch r {
	case ResolutionHD:
		return "HD"
	case ResolutionSD:
		return "SD"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// Entry is one media record of the manifest.
//
// Only the two image URL fields are modelled. A field is considered present
// when it holds a non-empty string.
type Entry struct {
	// HD is the high-definition image URL, empty if absent.
	HD string

	// SD is the standard-definition image URL, empty if absent.
	SD string
}

// BestURL returns the URL to download and its resolution.
//
// HD is preferred over SD. ok is false when the entry has neither field,
// in which case the entry is skipped.
func (e Entry) BestURL() (url string, res Resolution, ok bool) {
	if e.HD != "" {
		return e.HD, ResolutionHD, true
	}
	if e.SD != "" {
		return e.SD, ResolutionSD, true
	}
	return "", ResolutionHD, false
}

// Manifest holds the entries of a manifest's "data" mapping.
type Manifest struct {
	// Entries maps the opaque manifest keys to their entries.
	Entries map[string]Entry

	// Invalid counts values of the "data" mapping that were not objects.
	Invalid int
}

// Keys returns the entry keys in sorted order.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
