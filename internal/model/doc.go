// Package model defines the core data structures used throughout
// the panels-downloader application.
//
// # Manifest and Entry
//
// Manifest holds the entries of a manifest's "data" mapping. Each Entry
// carries an optional HD and SD image URL:
//
//	url, res, ok := entry.BestURL() // HD preferred over SD
//
// # Task
//
// Task is a resolved download with its computed destination path:
//
//	task, ok := model.NewTask(key, entry, "downloads")
//	fmt.Println(task.Path) // downloads/bob - My Art (HD).png
//
// # Naming
//
// ParseArtistAndTitle derives the artist and title from the image URL and
// SanitizeFileName strips characters that are unsafe in file names.
package model
