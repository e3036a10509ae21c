package main

import (
	"github.com/clineup/clineup/internal/config"
	"github.com/clineup/clineup/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options mirrors the command line. Only flags the user changed override
// the config file.
type options struct {
	configFile string
	settings   config.Settings
	verbose    int
	logFile    string
	logFormat  string
}

func newOptions() *options {
	return &options{settings: *config.DefaultSettings()}
}

func (o *options) register(cmd *cobra.Command) {
	s := &o.settings
	f := cmd.PersistentFlags()

	f.StringVarP(&o.configFile, "config", "c", "", "path to a JSON or YAML config file")
	f.CountVarP(&o.verbose, "verbose", "v", "verbose output, repeat for more")
	f.StringVar(&o.logFile, "log-file", "", "also write logs to this file (rotated)")
	f.StringVar(&o.logFormat, "log-format", "", "log format: text or json")

	f.StringVarP(&s.Source, "source", "s", "", "directory to read files from")
	f.StringVarP(&s.Destination, "destination", "d", "", "directory to place files in")
	f.BoolVarP(&s.Recursive, "recursive", "r", false, "descend into subdirectories")
	f.StringSliceVarP(&s.Extensions, "extension", "e", nil, "only these extensions")
	f.StringSliceVar(&s.ExcludeExtensions, "exclude-extension", nil, "skip these extensions")
	f.StringVar(&s.IncludeRegex, "include-regex", "", "only paths matching this regex")
	f.StringVar(&s.ExcludeRegex, "exclude-regex", "", "skip paths matching this regex")
	f.StringVar(&s.SizeGreater, "size-greater", "", "only files larger than this (e.g. 10KB)")
	f.StringVar(&s.SizeLower, "size-lower", "", "only files smaller than this (e.g. 50MB)")

	f.StringVar(&s.FolderFormat, "folder-format", "", "folder format, e.g. %year/%month")
	f.StringVar(&s.FilenameFormat, "filename-format", "", "filename format, keeps the original name when empty")
	f.StringVar(&s.Strategy, "strategy", s.Strategy, "copy, move or symlink")
	f.BoolVar(&s.Sanitize, "sanitize", false, "replace characters invalid in file names")
	f.BoolVarP(&s.DryRun, "dry-run", "n", false, "show what would happen without touching files")
	f.IntVar(&s.DryRunFiles, "dry-run-number-of-files", s.DryRunFiles, "files shown in dry run")

	f.BoolVar(&s.DropDuplicates, "drop-duplicates", false, "place only the first copy of identical files")
	f.StringVar(&s.DuplicateMode, "duplicates", s.DuplicateMode, "duplicate detection: exact or perceptual")

	f.StringVar(&s.ReverseGeocoding, "reverse-geocoding", "", "reverse geocoding provider (nominatim)")
	f.StringVar(&s.NominatimEmail, "nominatim-email", "", "contact email sent to Nominatim")
	f.StringVar(&s.NominatimURL, "nominatim-url", "", "Nominatim reverse endpoint")
	f.BoolVar(&s.GPSOptimization, "gps-optimization", s.GPSOptimization, "cache geocoding by rounded coordinates")
	f.IntVar(&s.GPSPrecision, "gps-precision", s.GPSPrecision, "decimals kept when rounding coordinates")
	f.IntVar(&s.GeocodeIntervalMs, "geocode-interval", s.GeocodeIntervalMs, "milliseconds between geocoder calls")
	f.StringVar(&s.GeocodeCache, "geocode-cache", "", "SQLite file persisting geocoding results")
}

// apply copies every changed flag onto dst.
func (o *options) apply(flags *pflag.FlagSet, dst *config.Settings) {
	src := &o.settings
	setters := map[string]func(){
		"source":                  func() { dst.Source = src.Source },
		"destination":             func() { dst.Destination = src.Destination },
		"recursive":               func() { dst.Recursive = src.Recursive },
		"extension":               func() { dst.Extensions = src.Extensions },
		"exclude-extension":       func() { dst.ExcludeExtensions = src.ExcludeExtensions },
		"include-regex":           func() { dst.IncludeRegex = src.IncludeRegex },
		"exclude-regex":           func() { dst.ExcludeRegex = src.ExcludeRegex },
		"size-greater":            func() { dst.SizeGreater = src.SizeGreater },
		"size-lower":              func() { dst.SizeLower = src.SizeLower },
		"folder-format":           func() { dst.FolderFormat = src.FolderFormat },
		"filename-format":         func() { dst.FilenameFormat = src.FilenameFormat },
		"strategy":                func() { dst.Strategy = src.Strategy },
		"sanitize":                func() { dst.Sanitize = src.Sanitize },
		"dry-run":                 func() { dst.DryRun = src.DryRun },
		"dry-run-number-of-files": func() { dst.DryRunFiles = src.DryRunFiles },
		"drop-duplicates":         func() { dst.DropDuplicates = src.DropDuplicates },
		"duplicates":              func() { dst.DuplicateMode = src.DuplicateMode },
		"reverse-geocoding":       func() { dst.ReverseGeocoding = src.ReverseGeocoding },
		"nominatim-email":         func() { dst.NominatimEmail = src.NominatimEmail },
		"nominatim-url":           func() { dst.NominatimURL = src.NominatimURL },
		"gps-optimization":        func() { dst.GPSOptimization = src.GPSOptimization },
		"gps-precision":           func() { dst.GPSPrecision = src.GPSPrecision },
		"geocode-interval":        func() { dst.GeocodeIntervalMs = src.GeocodeIntervalMs },
		"geocode-cache":           func() { dst.GeocodeCache = src.GeocodeCache },
		"log-file":                func() { dst.Log.File = o.logFile; dst.Log.Rotation = true },
		"log-format":              func() { dst.Log.Format = o.logFormat },
	}

	flags.Visit(func(f *pflag.Flag) {
		if set, ok := setters[f.Name]; ok {
			set()
		}
	})

	if o.verbose > 0 {
		dst.Log.Level = logging.DebugLevel
	}
}
