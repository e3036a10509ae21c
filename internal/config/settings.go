package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/clineup/clineup/internal/logging"
	"github.com/clineup/clineup/internal/placeholder"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Strategies for placing a file at its destination.
const (
	StrategyCopy    = "copy"
	StrategyMove    = "move"
	StrategySymlink = "symlink"
)

// Duplicate detection modes.
const (
	DuplicatesExact      = "exact"
	DuplicatesPerceptual = "perceptual"
)

// ProviderNominatim is the only reverse geocoding provider.
const ProviderNominatim = "nominatim"

// ErrNoFormat is returned when neither a folder nor a filename format is set.
var ErrNoFormat = errors.New("You should provide at least one of the folder or filename format.")

// Settings holds all configuration options.
type Settings struct {
	// Input selection
	Source            string   `json:"source" yaml:"source"`
	Recursive         bool     `json:"recursive" yaml:"recursive"`
	Extensions        []string `json:"extensions" yaml:"extensions"`
	ExcludeExtensions []string `json:"exclude_extensions" yaml:"exclude_extensions"`
	IncludeRegex      string   `json:"include_regex" yaml:"include_regex"`
	ExcludeRegex      string   `json:"exclude_regex" yaml:"exclude_regex"`
	SizeGreater       string   `json:"size_greater" yaml:"size_greater"` // e.g. "10KB"
	SizeLower         string   `json:"size_lower" yaml:"size_lower"`

	// Output
	Destination    string `json:"destination" yaml:"destination"`
	FolderFormat   string `json:"folder_format" yaml:"folder_format"`
	FilenameFormat string `json:"filename_format" yaml:"filename_format"`
	Strategy       string `json:"strategy" yaml:"strategy"` // copy, move, symlink
	Sanitize       bool   `json:"sanitize" yaml:"sanitize"`
	DryRun         bool   `json:"dry_run" yaml:"dry_run"`
	DryRunFiles    int    `json:"dry_run_number_of_files" yaml:"dry_run_number_of_files"`

	// Duplicates
	DropDuplicates bool   `json:"drop_duplicates" yaml:"drop_duplicates"`
	DuplicateMode  string `json:"duplicate_mode" yaml:"duplicate_mode"` // exact, perceptual

	// Reverse geocoding
	ReverseGeocoding  string `json:"reverse_geocoding" yaml:"reverse_geocoding"` // "" or nominatim
	NominatimEmail    string `json:"nominatim_email" yaml:"nominatim_email"`
	NominatimURL      string `json:"nominatim_url" yaml:"nominatim_url"`
	GPSOptimization   bool   `json:"gps_optimization" yaml:"gps_optimization"`
	GPSPrecision      int    `json:"gps_precision" yaml:"gps_precision"`
	GeocodeIntervalMs int    `json:"geocode_interval_ms" yaml:"geocode_interval_ms"`
	GeocodeCache      string `json:"geocode_cache" yaml:"geocode_cache"` // SQLite path, optional

	Log logging.LogConfig `json:"log" yaml:"log"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Strategy:          StrategyCopy,
		DryRunFiles:       10,
		DuplicateMode:     DuplicatesExact,
		GPSOptimization:   true,
		GPSPrecision:      2,
		GeocodeIntervalMs: 1100,
		Log:               *logging.DefaultLogConfig(),
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads settings from a JSON or YAML file, chosen by extension. A
// missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Environment variables read by ApplyEnv.
const (
	EnvNominatimEmail = "CLINEUP_NOMINATIM_EMAIL"
	EnvGeocodeCache   = "CLINEUP_GEOCODE_CACHE"
	EnvLogLevel       = "CLINEUP_LOG_LEVEL"
)

// ApplyEnv overrides settings from the environment. Unset variables leave
// the current value.
func (s *Settings) ApplyEnv() {
	if v := os.Getenv(EnvNominatimEmail); v != "" {
		s.NominatimEmail = v
	}
	if v := os.Getenv(EnvGeocodeCache); v != "" {
		s.GeocodeCache = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.Log.Level = logging.LogLevel(v)
	}
}

// FullFormat joins the folder and filename formats into one template.
// With only a folder format the file keeps its original name.
func (s *Settings) FullFormat() (string, error) {
	folder := strings.TrimRight(s.FolderFormat, "/")
	switch {
	case folder == "" && s.FilenameFormat == "":
		return "", ErrNoFormat
	case folder == "":
		return s.FilenameFormat, nil
	case s.FilenameFormat == "":
		return folder + "/%original_filename", nil
	default:
		return folder + "/" + s.FilenameFormat, nil
	}
}

// GeocodeInterval returns the minimum spacing between geocoder calls.
func (s *Settings) GeocodeInterval() time.Duration {
	return time.Duration(s.GeocodeIntervalMs) * time.Millisecond
}

// SizeBounds parses SizeGreater and SizeLower. Zero means unbounded.
func (s *Settings) SizeBounds() (greater, lower uint64, err error) {
	if s.SizeGreater != "" {
		if greater, err = humanize.ParseBytes(s.SizeGreater); err != nil {
			return 0, 0, fmt.Errorf("size_greater %q: %w", s.SizeGreater, err)
		}
	}
	if s.SizeLower != "" {
		if lower, err = humanize.ParseBytes(s.SizeLower); err != nil {
			return 0, 0, fmt.Errorf("size_lower %q: %w", s.SizeLower, err)
		}
	}
	return greater, lower, nil
}

// Validate checks the settings before a run.
func (s *Settings) Validate() error {
	var errs []error

	if s.Source == "" {
		errs = append(errs, errors.New("source directory is required"))
	}
	if s.Destination == "" {
		errs = append(errs, errors.New("destination directory is required"))
	}

	format, err := s.FullFormat()
	if err != nil {
		errs = append(errs, err)
	}

	switch s.Strategy {
	case StrategyCopy, StrategyMove, StrategySymlink:
	default:
		errs = append(errs, fmt.Errorf("unknown strategy %q (copy, move or symlink)", s.Strategy))
	}

	switch s.DuplicateMode {
	case DuplicatesExact, DuplicatesPerceptual:
	default:
		errs = append(errs, fmt.Errorf("unknown duplicate mode %q (exact or perceptual)", s.DuplicateMode))
	}

	switch s.ReverseGeocoding {
	case "":
		if format != "" && placeholder.Parse(format).Needs().Location {
			errs = append(errs, errors.New("the format uses location placeholders but no reverse geocoding provider is set"))
		}
	case ProviderNominatim:
		if s.NominatimEmail == "" {
			errs = append(errs, errors.New("nominatim requires an email to identify requests"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown reverse geocoding provider %q", s.ReverseGeocoding))
	}

	if s.GPSPrecision < 0 || s.GPSPrecision > 8 {
		errs = append(errs, fmt.Errorf("gps precision %d out of range 0-8", s.GPSPrecision))
	}

	for name, expr := range map[string]string{"include_regex": s.IncludeRegex, "exclude_regex": s.ExcludeRegex} {
		if expr == "" {
			continue
		}
		if _, err := regexp.Compile(expr); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if _, _, err := s.SizeBounds(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
