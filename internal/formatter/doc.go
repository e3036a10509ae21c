// Package formatter renders a path template for one file.
//
// A Formatter parses its template once. For each file it builds the
// metadata, filesystem and location providers on first use, resolves every
// placeholder group by trying its alternatives left to right and splices
// the values back into the template's literal text.
//
// A group whose alternatives all fail renders as "Unknown <Field>", for
// example "Unknown Year" or "Unknown Camera Brand". When a group cannot
// resolve only because a provider failed to build (the file is not media,
// the geocoding service is down), Format returns a *FileError instead so
// the caller can skip the file rather than misfile it.
//
// Example:
//
//	f := formatter.New("%year/{%city|%country|No Place}/%original_filename", formatter.Options{
//	    Locator: cache,
//	})
//	rel, err := f.Format(ctx, "/photos/IMG_0001.jpg")
//	// "2023/Paris/IMG_0001.jpg"
package formatter
