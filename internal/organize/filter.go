package organize

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/clineup/clineup/internal/config"
)

// Filter decides which files under the source take part in a run.
type Filter struct {
	extensions map[string]bool
	excluded   map[string]bool
	include    *regexp.Regexp
	exclude    *regexp.Regexp
	greater    uint64
	lower      uint64
}

// NewFilter compiles the selection settings.
func NewFilter(s *config.Settings) (*Filter, error) {
	f := &Filter{
		extensions: extensionSet(s.Extensions),
		excluded:   extensionSet(s.ExcludeExtensions),
	}

	var err error
	if s.IncludeRegex != "" {
		if f.include, err = regexp.Compile(s.IncludeRegex); err != nil {
			return nil, fmt.Errorf("include regex: %w", err)
		}
	}
	if s.ExcludeRegex != "" {
		if f.exclude, err = regexp.Compile(s.ExcludeRegex); err != nil {
			return nil, fmt.Errorf("exclude regex: %w", err)
		}
	}
	if f.greater, f.lower, err = s.SizeBounds(); err != nil {
		return nil, err
	}
	return f, nil
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		return nil
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			set[e] = true
		}
	}
	return set
}

// Match reports whether a file with the given path and size is selected.
// Size bounds are strict.
func (f *Filter) Match(path string, size int64) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if f.extensions != nil && !f.extensions[ext] {
		return false
	}
	if f.excluded[ext] {
		return false
	}
	if f.include != nil && !f.include.MatchString(path) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(path) {
		return false
	}
	if f.greater > 0 && uint64(size) <= f.greater {
		return false
	}
	if f.lower > 0 && uint64(size) >= f.lower {
		return false
	}
	return true
}

// Collect lists the regular files under root accepted by filter, in
// lexical order. Subdirectories are entered only when recursive is set.
func Collect(ctx context.Context, root string, recursive bool, filter *Filter) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if filter == nil || filter.Match(path, info.Size()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return files, nil
}
