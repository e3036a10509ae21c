// Package geocode turns GPS coordinates into administrative place names.
//
// A Reverser performs one reverse-geocoding lookup. Nominatim implements it
// against the OpenStreetMap Nominatim service, whose usage policy asks for
// an identifying User-Agent and at most one request per second; throttling
// and caching are left to the caller (see package geocache).
package geocode
