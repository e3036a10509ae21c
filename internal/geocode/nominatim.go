package geocode

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/clineup/clineup/internal/http"
)

const (
	// NominatimURL is the public OpenStreetMap reverse endpoint.
	NominatimURL = "https://nominatim.openstreetmap.org/reverse"

	// NominatimInterval is the spacing between requests the public
	// instance tolerates, with a margin over its one-per-second policy.
	NominatimInterval = 1100 * time.Millisecond

	// nominatimZoom selects city-level detail.
	nominatimZoom = "10"
)

type nominatimResult struct {
	Error   string           `json:"error"`
	Address *nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	Country      string `json:"country"`
	State        string `json:"state"`
	County       string `json:"county"`
	Municipality string `json:"municipality"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
}

// Nominatim is a Reverser backed by an OpenStreetMap Nominatim instance.
type Nominatim struct {
	client   *http.Client
	endpoint string
	email    string
	language string
}

// NominatimOption configures a Nominatim client.
type NominatimOption func(*Nominatim)

// WithEndpoint points the client at another Nominatim instance.
func WithEndpoint(endpoint string) NominatimOption {
	return func(n *Nominatim) { n.endpoint = endpoint }
}

// WithLanguage sets the preferred language of returned names.
func WithLanguage(lang string) NominatimOption {
	return func(n *Nominatim) { n.language = lang }
}

// NewNominatim creates a client identifying itself with the given agent
// name and contact email.
//
// Example:
//
//	geo := geocode.NewNominatim("clineup/1.0", "me@example.com")
//	loc, err := geo.Reverse(ctx, 48.8582, 2.2945)
func NewNominatim(agent, email string, opts ...NominatimOption) *Nominatim {
	ua := agent
	if email != "" {
		ua = fmt.Sprintf("%s (%s)", agent, email)
	}
	n := &Nominatim{
		client:   http.NewClient(ua),
		endpoint: NominatimURL,
		email:    email,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Reverse looks up the address at lat/lon.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (Location, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("zoom", nominatimZoom)
	if n.email != "" {
		params.Set("email", n.email)
	}
	if n.language != "" {
		params.Set("accept-language", n.language)
	}

	var result nominatimResult
	if err := n.client.GetJSON(ctx, n.endpoint, params, &result); err != nil {
		return Location{}, fmt.Errorf("nominatim reverse %v,%v: %w", lat, lon, err)
	}
	if result.Error != "" || result.Address == nil {
		return Location{}, fmt.Errorf("nominatim reverse %v,%v: %w", lat, lon, ErrNoAddress)
	}

	loc := NewLocation(result.Address.toAddress())
	if loc.IsEmpty() {
		return Location{}, fmt.Errorf("nominatim reverse %v,%v: %w", lat, lon, ErrNoAddress)
	}
	return loc, nil
}

func (a *nominatimAddress) toAddress() Address {
	return Address{
		Country:      strings.TrimSpace(a.Country),
		State:        strings.TrimSpace(a.State),
		County:       strings.TrimSpace(a.County),
		Municipality: strings.TrimSpace(a.Municipality),
		City:         strings.TrimSpace(firstNonEmpty(a.City, a.Town, a.Village)),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
