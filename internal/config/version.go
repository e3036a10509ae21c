package config

// Version is the release of clineup, sent in the geocoder User-Agent.
const Version = "0.4.0"

// UserAgent identifies clineup to web services.
func UserAgent() string {
	return "clineup/" + Version
}
