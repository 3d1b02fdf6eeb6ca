// internal/ephemeris/meeus/meeus.go
package meeus

import (
	"context"
	"fmt"
	"math"

	"github.com/newthinker/natal/internal/core"
	"github.com/newthinker/natal/internal/ephemeris"
	"github.com/newthinker/natal/internal/zodiac"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// The low-precision series lose accuracy far from J2000, so requests are
// limited to years -3000..3000.
const (
	minJD = 625332.5  // -3000-01-01
	maxJD = 2817152.5 // 3001-01-01
)

// Provider computes positions locally from the Meeus algorithms.
type Provider struct{}

// New creates a new Meeus provider.
func New() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "meeus"
}

// BodyLongitude returns the apparent geocentric ecliptic position of body.
func (p *Provider) BodyLongitude(ctx context.Context, jd float64, body ephemeris.Body, opts ephemeris.Options) (ephemeris.BodyPosition, error) {
	if err := ctx.Err(); err != nil {
		return ephemeris.BodyPosition{}, err
	}
	if err := checkJulianDay(jd); err != nil {
		return ephemeris.BodyPosition{}, err
	}
	if !opts.Sidereal.Valid() {
		return ephemeris.BodyPosition{}, fail("unknown sidereal mode %q", opts.Sidereal)
	}

	jde := jd + DeltaT(jd)/86400

	var pos ephemeris.BodyPosition
	switch body {
	case ephemeris.BodySun:
		pos.Longitude = solar.ApparentLongitude(base.J2000Century(jde)).Deg()
	case ephemeris.BodyMoon:
		// the lunar series is referred to the mean equinox of date
		lon, lat, _ := moonposition.Position(jde)
		dpsi, _ := nutation.Nutation(jde)
		pos.Longitude = (lon + dpsi).Deg()
		pos.Latitude = lat.Deg()
	default:
		return ephemeris.BodyPosition{}, fail("unsupported body %q", body)
	}

	pos.Longitude = zodiac.Normalize(pos.Longitude - Ayanamsha(opts.Sidereal, jde))
	return pos, nil
}

// Houses returns the house cusps for a place given in degrees, east
// longitude positive.
func (p *Provider) Houses(ctx context.Context, jd, latitude, longitude float64, opts ephemeris.Options) (ephemeris.Houses, error) {
	if err := ctx.Err(); err != nil {
		return ephemeris.Houses{}, err
	}
	if err := checkJulianDay(jd); err != nil {
		return ephemeris.Houses{}, err
	}
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return ephemeris.Houses{}, fail("invalid latitude %v", latitude)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return ephemeris.Houses{}, fail("invalid longitude %v", longitude)
	}
	if !opts.Sidereal.Valid() {
		return ephemeris.Houses{}, fail("unknown sidereal mode %q", opts.Sidereal)
	}
	if !opts.HouseSystem.Valid() {
		return ephemeris.Houses{}, fail("unknown house system %q", opts.HouseSystem)
	}

	jde := jd + DeltaT(jd)/86400
	_, deps := nutation.Nutation(jde)
	eps := (nutation.MeanObliquity(jde) + deps).Deg()

	// apparent sidereal time is in seconds of time, 240 s per degree
	ramc := zodiac.Normalize(float64(sidereal.Apparent(jd))/240 + longitude)

	houses := Cusps(ramc, eps, latitude, opts.HouseSystem)

	if ay := Ayanamsha(opts.Sidereal, jde); ay != 0 {
		for i := range houses.Cusps {
			houses.Cusps[i] = zodiac.Normalize(houses.Cusps[i] - ay)
		}
		houses.Ascendant = zodiac.Normalize(houses.Ascendant - ay)
		houses.MC = zodiac.Normalize(houses.MC - ay)
	}
	return houses, nil
}

func checkJulianDay(jd float64) error {
	if math.IsNaN(jd) || jd < minJD || jd >= maxJD {
		return fail("julian day %v outside supported range", jd)
	}
	return nil
}

func fail(format string, args ...any) error {
	return core.WrapError(core.ErrEphemeris, fmt.Errorf(format, args...))
}
