package tz

import (
	"fmt"
	"strings"
	"time"

	// Embedded zone database so CAMPUS_TIMEZONE works on minimal images.
	_ "time/tzdata"
)

// Load returns the named location. An empty name means UTC.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utc") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return loc, nil
}

// MustLoad is Load for values already validated by the config.
func MustLoad(name string) *time.Location {
	loc, err := Load(name)
	if err != nil {
		panic(err)
	}
	return loc
}
