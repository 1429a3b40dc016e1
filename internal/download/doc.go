// Package download provides the download orchestration logic for
// fetching the images listed in a media manifest.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Load the manifest
//  2. Resolve each entry into a task (HD preferred over SD)
//  3. Create the downloads directory
//  4. Download all tasks concurrently
//  5. Summarize the outcomes
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx); err != nil {
//	    log.Fatal(err) // panels.ErrManifestEmpty, panels.ErrManifestMalformed, ...
//	}
//
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%+v\n", manager.Summary())
//
// # Concurrency
//
// Every task gets its own goroutine. The HTTP client allows at most
// settings.MaxConnectionsPerHost requests to one host at a time; the rest
// wait for a slot. A failed task is recorded in its Outcome and never
// cancels its siblings. The progress callback may be called concurrently.
//
// # Failures
//
// Each task is attempted once. A non-200 response or a transport failure
// is reported as a LevelError event and no file is written.
package download
