package organize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/clineup/clineup/internal/config"
	"github.com/clineup/clineup/internal/formatter"
	"github.com/clineup/clineup/internal/geocache"
	"github.com/clineup/clineup/internal/geocode"
	ioutils "github.com/clineup/clineup/internal/io"
	"github.com/clineup/clineup/internal/logging"
	"github.com/sirupsen/logrus"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an organizer progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// PathFormatter renders the destination of a file relative to the
// destination root, '/'-separated. *formatter.Formatter implements it.
type PathFormatter interface {
	Format(ctx context.Context, path string) (string, error)
}

// Summary counts the outcome of a run.
type Summary struct {
	Total      int
	Placed     int
	Duplicates int
	Skipped    int
	Failed     int
	DryRun     bool
}

// Manager coordinates one organizing run.
type Manager struct {
	settings   *config.Settings
	formatter  PathFormatter
	place      Placer
	filter     *Filter
	duplicates *DuplicateFinder
	geo        *geocache.Cache
	closers    []io.Closer
	log        logrus.FieldLogger

	files          []string
	totalFiles     int32
	processedFiles int32

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager from validated settings, building the
// formatter and, when the template needs it, the geocoder and its cache.
func NewManager(settings *config.Settings, log logrus.FieldLogger, onProgress func(ProgressEvent)) (*Manager, error) {
	log = logging.OrDiscard(log)

	template, err := settings.FullFormat()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		settings:   settings,
		log:        log,
		onProgress: onProgress,
	}

	opts := formatter.Options{Logger: log}
	if settings.ReverseGeocoding == config.ProviderNominatim {
		geo, err := m.newGeocoder()
		if err != nil {
			return nil, err
		}
		m.geo = geo
		opts.Locator = geo
	}

	f := formatter.New(template, opts)
	if f.Needs().Location && opts.Locator == nil {
		m.Close()
		return nil, errors.New("the format uses location placeholders but no reverse geocoding provider is set")
	}

	return m.withFormatter(f)
}

// NewManagerWithFormatter creates a Manager that renders paths with f.
func NewManagerWithFormatter(settings *config.Settings, f PathFormatter, log logrus.FieldLogger, onProgress func(ProgressEvent)) (*Manager, error) {
	m := &Manager{
		settings:   settings,
		log:        logging.OrDiscard(log),
		onProgress: onProgress,
	}
	return m.withFormatter(f)
}

func (m *Manager) withFormatter(f PathFormatter) (*Manager, error) {
	place, err := PlacerFor(m.settings.Strategy)
	if err != nil {
		m.Close()
		return nil, err
	}
	filter, err := NewFilter(m.settings)
	if err != nil {
		m.Close()
		return nil, err
	}

	m.formatter = f
	m.place = place
	m.filter = filter
	if m.settings.DropDuplicates {
		m.duplicates = NewDuplicateFinder(m.settings.DuplicateMode)
	}
	return m, nil
}

func (m *Manager) newGeocoder() (*geocache.Cache, error) {
	s := m.settings

	var nopts []geocode.NominatimOption
	if s.NominatimURL != "" {
		nopts = append(nopts, geocode.WithEndpoint(s.NominatimURL))
	}
	reverser := geocode.NewNominatim(config.UserAgent(), s.NominatimEmail, nopts...)

	opts := geocache.Options{
		Precision:   geocache.PrecisionFor(s.GPSPrecision),
		Disabled:    !s.GPSOptimization,
		MinInterval: s.GeocodeInterval(),
		Logger:      m.log,
	}
	if s.GeocodeCache != "" {
		store, err := geocache.OpenSQLiteStore(s.GeocodeCache)
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, store)
		opts.Store = store
	}
	return geocache.New(reverser, opts), nil
}

// Close releases the geocoding cache database, if any.
func (m *Manager) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Initialize lists the files to organize and fingerprints them when
// duplicates are dropped.
func (m *Manager) Initialize(ctx context.Context) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", m.settings.Source), Level: LevelVerbose})

	files, err := Collect(ctx, m.settings.Source, m.settings.Recursive, m.filter)
	if err != nil {
		return err
	}
	m.files = files
	atomic.StoreInt32(&m.totalFiles, int32(len(files)))
	atomic.StoreInt32(&m.processedFiles, 0)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d files", len(files)), Level: LevelInfo})

	if m.duplicates != nil {
		m.progress(ProgressEvent{Message: "Fingerprinting files for duplicate detection", Level: LevelVerbose})
		if err := m.duplicates.Prepare(ctx, files); err != nil {
			return err
		}
	}
	return nil
}

// Files returns the files found by Initialize.
func (m *Manager) Files() []string {
	return m.files
}

// GetProgress returns how many files were processed out of the total.
func (m *Manager) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&m.processedFiles), atomic.LoadInt32(&m.totalFiles)
}

// Run processes the files found by Initialize one at a time. A file that
// fails is reported and skipped; Run itself fails only when ctx ends.
func (m *Manager) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Total: len(m.files), DryRun: m.settings.DryRun}
	shown := 0
	targets := make(map[string]string, len(m.files))

	for _, src := range m.files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		m.processFile(ctx, src, &sum, &shown, targets)
		atomic.AddInt32(&m.processedFiles, 1)
	}

	if m.geo != nil {
		st := m.geo.Stats()
		m.log.WithFields(logrus.Fields{
			"hits":   st.Hits,
			"misses": st.Misses,
			"calls":  st.Calls,
			"errors": st.Errors,
		}).Info("geocoding cache")
	}

	level := LevelSuccess
	if sum.Failed > 0 {
		level = LevelWarning
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Done: %d placed, %d duplicates, %d skipped, %d failed", sum.Placed, sum.Duplicates, sum.Skipped, sum.Failed),
		Level:   level,
	})
	return sum, nil
}

func (m *Manager) processFile(ctx context.Context, src string, sum *Summary, shown *int, targets map[string]string) {
	if m.duplicates != nil {
		first, dup, err := m.duplicates.Check(ctx, src)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", src, err), Level: LevelError})
			sum.Failed++
			return
		}
		if dup {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Duplicate of %s: %s", first, src), Level: LevelVerbose})
			sum.Duplicates++
			return
		}
	}

	rel, err := m.formatter.Format(ctx, src)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", src, err), Level: LevelError})
		sum.Failed++
		return
	}
	if m.settings.Sanitize {
		rel = ioutils.SanitizePath(rel)
	}
	dst := filepath.Join(m.settings.Destination, filepath.FromSlash(rel))

	if prev, ok := targets[dst]; ok {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %s already goes to %s", src, prev, dst), Level: LevelWarning})
		sum.Skipped++
		return
	}
	targets[dst] = src

	if m.settings.DryRun {
		if *shown < m.settings.DryRunFiles {
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s -> %s", src, dst), Level: LevelInfo})
			*shown++
		}
		sum.Placed++
		return
	}

	if err := ioutils.EnsureDir(filepath.Dir(dst)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory for %s: %v", dst, err), Level: LevelError})
		sum.Failed++
		return
	}

	if err := m.place(ctx, src, dst); err != nil {
		if errors.Is(err, ioutils.ErrDestinationExists) || errors.Is(err, os.ErrExist) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %s exists", src, dst), Level: LevelWarning})
			sum.Skipped++
			return
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error placing %s: %v", src, err), Level: LevelError})
		sum.Failed++
		return
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s -> %s", m.settings.Strategy, src, dst), Level: LevelVerbose})
	sum.Placed++
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
