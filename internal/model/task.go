package model

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// UnknownArtist is returned by ParseArtistAndTitle when the URL path is too short.
	UnknownArtist = "unknown_artist"

	// UnknownImage is returned by ParseArtistAndTitle when the URL path is too short.
	UnknownImage = "unknown_image"

	// DefaultExtension is used when the image URL has no extension.
	DefaultExtension = ".jpg"

	artistMarker = "a~"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9 ._-]+`)

// Task is a resolved download: one URL and the file it will be saved to.
//
// Tasks are created by NewTask from a manifest Entry and are owned by a
// single download worker.
//
// Example:
//
//	entry := Entry{HD: "https://h/a~bob_99/My~Art.png"}
//	task, ok := NewTask("x", entry, "downloads")
//	// task.Path = "downloads/bob - My Art (HD).png"
type Task struct {
	// Key is the manifest key the task was built from.
	Key string

	// URL is the image URL to fetch.
	URL string

	// Resolution is the variant that was selected.
	Resolution Resolution

	// Artist is the sanitized artist name.
	Artist string

	// Title is the sanitized image title.
	Title string

	// Ext is the file extension, including the dot.
	Ext string

	// Path is the full destination path.
	Path string
}

// NewTask resolves an entry into a Task saved under dir.
//
// ok is false when the entry has no usable URL.
func NewTask(key string, entry Entry, dir string) (*Task, bool) {
	imageURL, res, ok := entry.BestURL()
	if !ok {
		return nil, false
	}

	artist, title := ParseArtistAndTitle(imageURL)
	task := &Task{
		Key:        key,
		URL:        imageURL,
		Resolution: res,
		Artist:     SanitizeFileName(artist),
		Title:      SanitizeFileName(title),
		Ext:        FileExtension(imageURL),
	}
	task.Path = filepath.Join(dir, task.FileName())

	return task, true
}

// FileName returns "{artist} - {title} ({resolution}){ext}".
func (t *Task) FileName() string {
	return fmt.Sprintf("%s - %s (%s)%s", t.Artist, t.Title, t.Resolution, t.Ext)
}

// ParseArtistAndTitle extracts the artist and image title from an image URL.
//
// The second-to-last path segment carries the artist ("a~janedoe_1234"):
// the part before the first underscore is kept and the "a~" marker removed.
// The last segment is the file name: its extension is dropped and '~' becomes
// a space. Paths with fewer than two segments give
// ("unknown_artist", "unknown_image").
//
// Example:
//
//	ParseArtistAndTitle("https://h/a~janedoe_1234/sunset~view.png") // "janedoe", "sunset view"
func ParseArtistAndTitle(rawURL string) (artist, title string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return UnknownArtist, UnknownImage
	}

	parts := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	if len(parts) < 2 {
		return UnknownArtist, UnknownImage
	}

	artistPart := unescapeSegment(parts[len(parts)-2])
	artistPart, _, _ = strings.Cut(artistPart, "_")
	artist = strings.ReplaceAll(artistPart, artistMarker, "")

	name, _ := splitExt(unescapeSegment(parts[len(parts)-1]))
	title = strings.ReplaceAll(name, "~", " ")

	return artist, title
}

// FileExtension returns the extension of the URL's path, or ".jpg" if it has none.
func FileExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultExtension
	}

	p := u.EscapedPath()
	base := unescapeSegment(p[strings.LastIndex(p, "/")+1:])
	_, ext := splitExt(base)

	ext = SanitizeFileName(ext)
	if ext == "" || ext == "." {
		return DefaultExtension
	}
	return ext
}

// SanitizeFileName keeps ASCII letters, digits, spaces, '-', '_' and '.',
// drops every other character and trims trailing spaces.
//
// SanitizeFileName is idempotent.
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2 ") // Returns "Song Part 12"
func SanitizeFileName(name string) string {
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.TrimRight(name, " ")
}

// splitExt splits name into root and extension. Leading dots do not start
// an extension, so ".hidden" has none.
func splitExt(name string) (root, ext string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || strings.TrimLeft(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}

func unescapeSegment(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}
