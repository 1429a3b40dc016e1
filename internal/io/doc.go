// Package ioutils provides file system and image utilities.
//
// # File Operations
//
//	// Ensure directory exists
//	created, err := ioutils.EnsureDir("downloads")
//
//	// Write a file atomically; an existing file is replaced
//	err := ioutils.WriteFileAtomic("downloads/report.json", func(w io.Writer) error {
//	    _, err := w.Write(data)
//	    return err
//	})
//
// # Image Inspection
//
// The ImageService reads the header of a saved image:
//
//	svc := ioutils.NewImageService()
//	info, _ := svc.Describe(ctx, path)
//	fmt.Println(info) // 2560x1440 webp
package ioutils
