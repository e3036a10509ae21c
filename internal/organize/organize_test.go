package organize

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/clineup/clineup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0o644))
}

func writePNG(t *testing.T, path string, shade uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x*4) ^ shade})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestCollectFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.JPG"), 10)
	writeFile(t, filepath.Join(root, "b.png"), 2000)
	writeFile(t, filepath.Join(root, "notes.txt"), 10)
	writeFile(t, filepath.Join(root, "sub", "c.jpg"), 10)
	writeFile(t, filepath.Join(root, "sub", "skip-me.jpg"), 10)

	tests := []struct {
		name      string
		settings  config.Settings
		recursive bool
		want      []string
	}{
		{
			name: "non recursive",
			want: []string{"a.JPG", "b.png", "notes.txt"},
		},
		{
			name:      "recursive",
			recursive: true,
			want:      []string{"a.JPG", "b.png", "notes.txt", "sub/c.jpg", "sub/skip-me.jpg"},
		},
		{
			name:      "extension allow list is case insensitive",
			settings:  config.Settings{Extensions: []string{".jpg"}},
			recursive: true,
			want:      []string{"a.JPG", "sub/c.jpg", "sub/skip-me.jpg"},
		},
		{
			name:      "excluded extension and regex",
			settings:  config.Settings{ExcludeExtensions: []string{"txt"}, ExcludeRegex: `skip-`},
			recursive: true,
			want:      []string{"a.JPG", "b.png", "sub/c.jpg"},
		},
		{
			name:      "include regex",
			settings:  config.Settings{IncludeRegex: `/sub/`},
			recursive: true,
			want:      []string{"sub/c.jpg", "sub/skip-me.jpg"},
		},
		{
			name:     "size bounds",
			settings: config.Settings{SizeGreater: "1KB"},
			want:     []string{"b.png"},
		},
		{
			name:     "upper size bound",
			settings: config.Settings{SizeLower: "1KB"},
			want:     []string{"a.JPG", "notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(&tt.settings)
			require.NoError(t, err)
			files, err := Collect(context.Background(), root, tt.recursive, f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, root, files))
		})
	}
}

func TestDuplicateFinderExact(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.bin")
	b := filepath.Join(root, "b.bin")
	c := filepath.Join(root, "c.bin")
	writeFile(t, a, 100)
	writeFile(t, b, 100)
	writeFile(t, c, 101)

	d := NewDuplicateFinder(config.DuplicatesExact)
	require.NoError(t, d.Prepare(context.Background(), []string{a, b, c}))

	_, dup, err := d.Check(context.Background(), a)
	require.NoError(t, err)
	assert.False(t, dup)

	first, dup, err := d.Check(context.Background(), b)
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, a, first)

	_, dup, err = d.Check(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, dup)

	_, _, err = d.Check(context.Background(), filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestDuplicateFinderPerceptual(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.png")
	b := filepath.Join(root, "b.png")
	writePNG(t, a, 0)
	writePNG(t, b, 0)
	// Same pixels, different bytes on disk.
	f, err := os.OpenFile(b, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte("trailing"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	d := NewDuplicateFinder(config.DuplicatesPerceptual)
	_, dup, err := d.Check(context.Background(), a)
	require.NoError(t, err)
	assert.False(t, dup)

	first, dup, err := d.Check(context.Background(), b)
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, a, first)
}

type stubFormatter struct {
	out map[string]string
	err map[string]error
}

func (s stubFormatter) Format(_ context.Context, path string) (string, error) {
	base := filepath.Base(path)
	if err, ok := s.err[base]; ok {
		return "", err
	}
	return s.out[base], nil
}

type recorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *recorder) add(e ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(level ProgressLevel) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Level == level {
			n++
		}
	}
	return n
}

func newSettings(src, dst string) *config.Settings {
	s := config.DefaultSettings()
	s.Source = src
	s.Destination = dst
	s.FolderFormat = "%original_folder"
	return s
}

func TestManagerCopiesAndSkips(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.jpg"), 3)
	writeFile(t, filepath.Join(src, "b.jpg"), 4)
	writeFile(t, filepath.Join(src, "c.jpg"), 5)
	writeFile(t, filepath.Join(src, "d.jpg"), 6)

	f := stubFormatter{
		out: map[string]string{
			"a.jpg": "2023/Paris/a.jpg",
			"b.jpg": "2023/Unknown City/b.jpg",
			"d.jpg": "2023/Paris/a.jpg",
		},
		err: map[string]error{"c.jpg": errors.New("not media")},
	}
	rec := &recorder{}
	m, err := NewManagerWithFormatter(newSettings(src, dst), f, nil, rec.add)
	require.NoError(t, err)

	require.NoError(t, m.Initialize(context.Background()))
	sum, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Total: 4, Placed: 2, Skipped: 1, Failed: 1}, sum)
	assert.FileExists(t, filepath.Join(dst, "2023", "Paris", "a.jpg"))
	assert.FileExists(t, filepath.Join(dst, "2023", "Unknown City", "b.jpg"))
	assert.FileExists(t, filepath.Join(src, "a.jpg"), "copy keeps the source")
	assert.Equal(t, 1, rec.count(LevelError))

	processed, total := m.GetProgress()
	assert.Equal(t, int32(4), processed)
	assert.Equal(t, int32(4), total)
}

func TestManagerDryRun(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	for _, name := range []string{"1.jpg", "2.jpg", "3.jpg"} {
		writeFile(t, filepath.Join(src, name), 1)
	}

	s := newSettings(src, dst)
	s.DryRun = true
	s.DryRunFiles = 2
	s.FilenameFormat = "%original_filename"
	rec := &recorder{}
	m, err := NewManager(s, nil, rec.add)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Initialize(context.Background()))
	sum, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Placed)
	assert.True(t, sum.DryRun)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)

	shown := 0
	for _, e := range rec.events {
		if e.Level == LevelInfo && strings.Contains(e.Message, " -> ") {
			shown++
			assert.Contains(t, e.Message, filepath.Join(dst, filepath.Base(src)))
		}
	}
	assert.Equal(t, 2, shown)
}

func TestManagerMoveDropsDuplicates(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.jpg"), 8)
	writeFile(t, filepath.Join(src, "b.jpg"), 8)
	writeFile(t, filepath.Join(src, "c.jpg"), 9)

	s := newSettings(src, dst)
	s.Strategy = config.StrategyMove
	s.DropDuplicates = true
	m, err := NewManager(s, nil, nil)
	require.NoError(t, err)

	require.NoError(t, m.Initialize(context.Background()))
	sum, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Placed)
	assert.Equal(t, 1, sum.Duplicates)
	folder := filepath.Base(src)
	assert.FileExists(t, filepath.Join(dst, folder, "a.jpg"))
	assert.FileExists(t, filepath.Join(dst, folder, "c.jpg"))
	assert.NoFileExists(t, filepath.Join(src, "a.jpg"))
	assert.FileExists(t, filepath.Join(src, "b.jpg"), "duplicates stay in place")
}

func TestManagerRejectsLocationWithoutGeocoder(t *testing.T) {
	s := newSettings(t.TempDir(), t.TempDir())
	s.FolderFormat = "{%country|x}"
	_, err := NewManager(s, nil, nil)
	assert.Error(t, err)
}

func TestManagerNeverOverwrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.jpg"), 3)
	folder := filepath.Base(src)
	writeFile(t, filepath.Join(dst, folder, "a.jpg"), 1)

	s := newSettings(src, dst)
	s.Strategy = config.StrategySymlink
	m, err := NewManager(s, nil, nil)
	require.NoError(t, err)
	require.NoError(t, m.Initialize(context.Background()))
	sum, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Skipped)
	data, err := os.ReadFile(filepath.Join(dst, folder, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestPlacerFor(t *testing.T) {
	for _, s := range []string{config.StrategyCopy, config.StrategyMove, config.StrategySymlink} {
		p, err := PlacerFor(s)
		require.NoError(t, err)
		assert.NotNil(t, p)
	}
	_, err := PlacerFor("hardlink")
	assert.Error(t, err)
}
