package geocache

import (
	"math"
	"strconv"
)

// Key is a rounded coordinate pair in its canonical text form.
type Key struct {
	Lat string
	Lon string
}

// NewKey rounds lat/lon to precision decimals. Two positions that round to
// the same values produce equal keys.
func NewKey(lat, lon float64, precision int) Key {
	return Key{
		Lat: formatRounded(lat, precision),
		Lon: formatRounded(lon, precision),
	}
}

func (k Key) String() string {
	return k.Lat + "," + k.Lon
}

// Coordinates returns the rounded values sent to the geocoder.
func (k Key) Coordinates() (lat, lon float64) {
	lat, _ = strconv.ParseFloat(k.Lat, 64)
	lon, _ = strconv.ParseFloat(k.Lon, 64)
	return lat, lon
}

// Round rounds v half away from zero to precision decimals.
func Round(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}

func formatRounded(v float64, precision int) string {
	r := Round(v, precision)
	if r == 0 {
		// Fold -0 into 0.
		r = 0
	}
	return strconv.FormatFloat(r, 'f', precision, 64)
}
