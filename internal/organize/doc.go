// Package organize runs clineup over a source directory.
//
// # Manager
//
// The Manager coordinates a run:
//
//  1. List the files under the source, filtered by extension, regex and size
//  2. Fingerprint them when duplicates are dropped
//  3. Render each destination with the path template
//  4. Copy, move or symlink each file, or only report it in a dry run
//
// # Basic Usage
//
//	manager, err := organize.NewManager(settings, log, func(event organize.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Close()
//
//	if err := manager.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := manager.Run(ctx)
//
// Files are processed one at a time so that geocoder calls stay spaced; a
// file that cannot be rendered or placed is reported and skipped. Existing
// destination files are never overwritten.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent,
// and GetProgress returns processed/total counts for polling UIs.
package organize
