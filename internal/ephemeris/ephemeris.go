// Package ephemeris defines the contract between the chart service and the
// astronomical calculation backends.
package ephemeris

import (
	"context"
	"fmt"
	"time"

	"github.com/newthinker/natal/internal/core"
	"github.com/soniakeys/meeus/v3/julian"
)

// Body identifies a celestial body
type Body string

const (
	BodySun  Body = "sun"
	BodyMoon Body = "moon"
)

// SiderealMode selects the ayanamsha subtracted from tropical longitudes
type SiderealMode string

const (
	SiderealTropical SiderealMode = "tropical"
	SiderealLahiri   SiderealMode = "lahiri"
)

// HouseSystem identifies a house division by its one-letter code
type HouseSystem string

const (
	HousePlacidus HouseSystem = "P"
	HousePorphyry HouseSystem = "O"
	HouseEqual    HouseSystem = "E"
)

// Options carries the calculation settings for a single provider call.
// It is passed by value so concurrent calls never share configuration.
type Options struct {
	Sidereal    SiderealMode
	HouseSystem HouseSystem
}

// DefaultOptions returns Lahiri sidereal longitudes with Placidus houses.
func DefaultOptions() Options {
	return Options{
		Sidereal:    SiderealLahiri,
		HouseSystem: HousePlacidus,
	}
}

// BodyPosition is the ecliptic position of a body in degrees.
type BodyPosition struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Houses holds house cusps and the angles in ecliptic degrees.
// Cusps[0] is the first house (the ascendant).
type Houses struct {
	Cusps     [12]float64 `json:"cusps"`
	Ascendant float64     `json:"ascendant"`
	MC        float64     `json:"mc"`
	// System is the house system actually used, which differs from the
	// requested one when a fallback was needed.
	System HouseSystem `json:"system"`
}

// Provider computes body positions and houses
type Provider interface {
	Name() string
	BodyLongitude(ctx context.Context, jd float64, body Body, opts Options) (BodyPosition, error)
	Houses(ctx context.Context, jd, latitude, longitude float64, opts Options) (Houses, error)
}

// UniversalTime converts a clock time to fractional hours.
func UniversalTime(hour, minute int) (float64, error) {
	if hour < 0 || hour > 23 {
		return 0, core.WrapError(core.ErrEphemeris, fmt.Errorf("invalid hour %d", hour))
	}
	if minute < 0 || minute > 59 {
		return 0, core.WrapError(core.ErrEphemeris, fmt.Errorf("invalid minute %d", minute))
	}
	return float64(hour) + float64(minute)/60, nil
}

// JulianDay returns the Julian day for a proleptic Gregorian calendar date
// and a fractional UT hour.
func JulianDay(year, month, day int, hour float64) (float64, error) {
	if month < 1 || month > 12 {
		return 0, core.WrapError(core.ErrEphemeris, fmt.Errorf("invalid month %d", month))
	}
	if day < 1 || day > daysIn(year, month) {
		return 0, core.WrapError(core.ErrEphemeris,
			fmt.Errorf("invalid day %d for %04d-%02d", day, year, month))
	}
	if hour < 0 || hour >= 24 {
		return 0, core.WrapError(core.ErrEphemeris, fmt.Errorf("invalid hour %v", hour))
	}
	return julian.CalendarGregorianToJD(year, month, float64(day)+hour/24), nil
}

func daysIn(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Valid reports whether m is a known sidereal mode.
func (m SiderealMode) Valid() bool {
	return m == SiderealTropical || m == SiderealLahiri
}

// Valid reports whether h is a supported house system.
func (h HouseSystem) Valid() bool {
	switch h {
	case HousePlacidus, HousePorphyry, HouseEqual:
		return true
	}
	return false
}
