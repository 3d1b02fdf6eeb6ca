// Package zodiac maps ecliptic longitudes to signs and signs to their
// traditional rulers.
package zodiac

import (
	"fmt"
	"math"

	"github.com/newthinker/natal/internal/core"
)

// SegmentDegrees is the width of each sign on the ecliptic.
const SegmentDegrees = 30.0

var rulers = map[core.Sign]core.Planet{
	core.SignAries:       core.PlanetMars,
	core.SignTaurus:      core.PlanetVenus,
	core.SignGemini:      core.PlanetMercury,
	core.SignCancer:      core.PlanetMoon,
	core.SignLeo:         core.PlanetSun,
	core.SignVirgo:       core.PlanetMercury,
	core.SignLibra:       core.PlanetVenus,
	core.SignScorpio:     core.PlanetMars,
	core.SignSagittarius: core.PlanetJupiter,
	core.SignCapricorn:   core.PlanetSaturn,
	core.SignAquarius:    core.PlanetSaturn,
	core.SignPisces:      core.PlanetJupiter,
}

// Normalize wraps a longitude in degrees into [0, 360).
func Normalize(longitude float64) float64 {
	lon := math.Mod(longitude, 360)
	if lon < 0 {
		lon += 360
	}
	// -1e-17 + 360 rounds back up to 360
	if lon >= 360 {
		lon = 0
	}
	return lon
}

// SignOf returns the sign containing the given ecliptic longitude.
// Out-of-range longitudes are wrapped first.
func SignOf(longitude float64) core.Sign {
	idx := int(Normalize(longitude)/SegmentDegrees) % len(core.Signs)
	return core.Signs[idx]
}

// DegreeInSign returns the offset of longitude within its sign, in [0, 30).
func DegreeInSign(longitude float64) float64 {
	return math.Mod(Normalize(longitude), SegmentDegrees)
}

// Ruler returns the traditional ruler of a sign.
// The table covers every sign, so an unknown sign is a programming error.
func Ruler(sign core.Sign) core.Planet {
	planet, ok := rulers[sign]
	if !ok {
		panic(fmt.Sprintf("zodiac: no ruler for sign %q", sign))
	}
	return planet
}
