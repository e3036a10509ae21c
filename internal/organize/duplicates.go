package organize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/clineup/clineup/internal/config"
	ioutils "github.com/clineup/clineup/internal/io"
	"github.com/corona10/goimagehash"
	"golang.org/x/sync/errgroup"
)

const (
	// perceptualThreshold is the largest dHash distance still considered
	// the same picture.
	perceptualThreshold = 10

	thumbnailSide = 256
)

type fingerprint struct {
	exact string
	phash *goimagehash.ImageHash
}

type seenImage struct {
	path  string
	phash *goimagehash.ImageHash
}

// DuplicateFinder reports files whose content was already seen in the run.
// The first file seen wins.
type DuplicateFinder struct {
	mode   string
	images *ioutils.ImageService

	mu       sync.Mutex
	prepared map[string]fingerprint
	exact    map[string]string
	visual   []seenImage
}

// NewDuplicateFinder creates a finder for mode (config.DuplicatesExact or
// config.DuplicatesPerceptual).
func NewDuplicateFinder(mode string) *DuplicateFinder {
	return &DuplicateFinder{
		mode:     mode,
		images:   ioutils.NewImageService(),
		prepared: make(map[string]fingerprint),
		exact:    make(map[string]string),
	}
}

// Prepare fingerprints paths concurrently so that Check only compares.
// Files that cannot be read are left for Check to report.
func (d *DuplicateFinder) Prepare(ctx context.Context, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fp, err := d.fingerprint(ctx, path)
			if err != nil {
				return nil
			}
			d.mu.Lock()
			d.prepared[path] = fp
			d.mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// Check returns the earlier file that path duplicates, if any, and records path
// as seen otherwise. Calls must be made in processing order.
func (d *DuplicateFinder) Check(ctx context.Context, path string) (string, bool, error) {
	d.mu.Lock()
	fp, ok := d.prepared[path]
	d.mu.Unlock()
	if !ok {
		var err error
		if fp, err = d.fingerprint(ctx, path); err != nil {
			return "", false, err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if fp.phash != nil {
		for _, seen := range d.visual {
			dist, err := fp.phash.Distance(seen.phash)
			if err == nil && dist < perceptualThreshold {
				return seen.path, true, nil
			}
		}
		d.visual = append(d.visual, seenImage{path: path, phash: fp.phash})
		return "", false, nil
	}

	if first, ok := d.exact[fp.exact]; ok {
		return first, true, nil
	}
	d.exact[fp.exact] = path
	return "", false, nil
}

// fingerprint hashes the content, or the picture in perceptual mode. Files
// that do not decode as images fall back to the content hash.
func (d *DuplicateFinder) fingerprint(ctx context.Context, path string) (fingerprint, error) {
	if d.mode == config.DuplicatesPerceptual {
		if img, err := d.images.LoadThumbnail(ctx, path, thumbnailSide); err == nil {
			if h, err := goimagehash.DifferenceHash(img); err == nil {
				return fingerprint{phash: h}, nil
			}
		}
	}

	sum, err := hashFile(path)
	if err != nil {
		return fingerprint{}, err
	}
	return fingerprint{exact: sum}, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%d:%s", n, hex.EncodeToString(h.Sum(nil))), nil
}
