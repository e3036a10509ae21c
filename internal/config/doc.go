// Package config provides settings management for clineup.
//
// Settings can be loaded from a JSON or YAML file (chosen by extension),
// overridden from the environment with ApplyEnv and finally from command
// line flags by the caller.
//
// # Loading Settings
//
//	settings, err := config.Load("clineup.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings.ApplyEnv()
//	if err := settings.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// If the file doesn't exist, default settings are returned.
//
// # Formats
//
// FolderFormat and FilenameFormat are path templates (see package
// placeholder). FullFormat joins them; when only the folder format is given
// the file keeps its original name:
//
//	s.FolderFormat = "%year/{%city|%country|No Place}"
//	tmpl, _ := s.FullFormat() // "%year/{%city|%country|No Place}/%original_filename"
//
// # Environment
//
//   - CLINEUP_NOMINATIM_EMAIL: contact email sent to Nominatim
//   - CLINEUP_GEOCODE_CACHE: SQLite file keeping geocoding results
//   - CLINEUP_LOG_LEVEL: debug, info, warn or error
package config
