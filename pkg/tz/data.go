package tz

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/packed.json
var embedded []byte

// Embedded returns the dataset compiled into the package.
func Embedded() (Packed, error) {
	var p Packed
	if err := json.Unmarshal(embedded, &p); err != nil {
		return Packed{}, fmt.Errorf("%w: %w", ErrInvalidPacked, err)
	}
	return p, nil
}

// NewEmbedded returns a database loaded with the embedded dataset.
func NewEmbedded(opts ...Option) (*Database, error) {
	p, err := Embedded()
	if err != nil {
		return nil, err
	}
	db := New(opts...)
	if err := db.Load(p); err != nil {
		return nil, err
	}
	return db, nil
}
