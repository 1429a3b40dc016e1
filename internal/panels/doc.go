// Package panels reads the media manifest published by the Panels wallpaper
// service.
//
// The manifest is a JSON document whose "data" field maps opaque keys to
// entries carrying image URLs:
//
//	{ "data": { "<key>": { "dhd": "<url>", "dsd": "<url>" } } }
//
// # Loading
//
//	loader := panels.NewLoader()
//	manifest, err := loader.LoadFile("media-1a-i-p~s.json")
//	if errors.Is(err, panels.ErrManifestEmpty) {
//	    // nothing to download
//	}
//
// Both ErrManifestEmpty and ErrManifestMalformed are terminal for a run.
package panels
