package geocode

import (
	"context"
	"errors"
)

// ErrNoAddress is returned when the service knows no address for a position.
var ErrNoAddress = errors.New("no address found")

// Address is the raw set of administrative names of a place. Empty fields
// are unknown.
type Address struct {
	Country      string
	State        string
	County       string
	Municipality string
	City         string
}

// Location is an immutable reverse-geocoding result.
type Location struct {
	addr Address
}

// NewLocation returns a Location holding a copy of addr.
func NewLocation(addr Address) Location {
	return Location{addr: addr}
}

func field(s string) (string, bool) {
	return s, s != ""
}

// Country returns the country name, if known.
func (l Location) Country() (string, bool) { return field(l.addr.Country) }

// State returns the state or region, if known.
func (l Location) State() (string, bool) { return field(l.addr.State) }

// County returns the county, if known.
func (l Location) County() (string, bool) { return field(l.addr.County) }

// Municipality returns the municipality, if known.
func (l Location) Municipality() (string, bool) { return field(l.addr.Municipality) }

// City returns the city, town or village, if known.
func (l Location) City() (string, bool) { return field(l.addr.City) }

// Address returns a copy of all fields.
func (l Location) Address() Address {
	return l.addr
}

// IsEmpty reports whether no field is known.
func (l Location) IsEmpty() bool {
	return l.addr == Address{}
}

// Reverser resolves coordinates in decimal degrees to a Location.
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (Location, error)
}
