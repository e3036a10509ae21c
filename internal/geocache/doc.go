// Package geocache memoizes reverse-geocoding lookups and spaces out the
// calls that do reach the service.
//
// Coordinates are rounded to a fixed number of decimals before lookup, so
// photos taken a few meters apart share one Key and one service call. One
// decimal is roughly 11 km, two roughly 1.1 km, three roughly 110 m.
//
// Every outbound call goes through a Throttle: a call starts no earlier
// than the configured interval after the previous call returned, whether
// it succeeded or not. A Cache is safe for concurrent use; concurrent
// misses on the same Key share one call.
//
// Example:
//
//	cache := geocache.New(geocode.NewNominatim("clineup/1.0", email), geocache.Options{
//	    Precision:   2,
//	    MinInterval: geocode.NominatimInterval,
//	})
//	loc, err := cache.Resolve(ctx, 48.85823, 2.29452)
package geocache
