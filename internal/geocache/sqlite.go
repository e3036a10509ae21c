package geocache

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/clineup/clineup/internal/geocode"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS locations (
	lat          TEXT NOT NULL,
	lon          TEXT NOT NULL,
	country      TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT '',
	county       TEXT NOT NULL DEFAULT '',
	municipality TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (lat, lon)
)`

// SQLiteStore keeps lookups in a SQLite database so later runs reuse them.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open geocode cache %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init geocode cache %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(key Key) (geocode.Location, bool, error) {
	var a geocode.Address
	err := s.db.QueryRow(
		`SELECT country, state, county, municipality, city FROM locations WHERE lat = ? AND lon = ?`,
		key.Lat, key.Lon,
	).Scan(&a.Country, &a.State, &a.County, &a.Municipality, &a.City)
	if errors.Is(err, sql.ErrNoRows) {
		return geocode.Location{}, false, nil
	}
	if err != nil {
		return geocode.Location{}, false, err
	}
	return geocode.NewLocation(a), true, nil
}

func (s *SQLiteStore) Put(key Key, loc geocode.Location) error {
	a := loc.Address()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO locations (lat, lon, country, state, county, municipality, city)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key.Lat, key.Lon, a.Country, a.State, a.County, a.Municipality, a.City,
	)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
