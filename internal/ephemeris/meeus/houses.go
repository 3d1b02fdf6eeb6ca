package meeus

import (
	"math"

	"github.com/newthinker/natal/internal/ephemeris"
	"github.com/newthinker/natal/internal/zodiac"
)

const (
	deg = math.Pi / 180

	placidusMaxIter   = 50
	placidusTolerance = 1e-10
)

// Ascendant returns the ecliptic longitude rising on the eastern horizon.
// ramc is the right ascension of the meridian, eps the true obliquity and
// lat the geographic latitude, all in degrees.
func Ascendant(ramc, eps, lat float64) float64 {
	y := math.Cos(ramc * deg)
	x := -(math.Sin(ramc*deg)*math.Cos(eps*deg) + math.Tan(lat*deg)*math.Sin(eps*deg))
	return zodiac.Normalize(math.Atan2(y, x) / deg)
}

// Midheaven returns the ecliptic longitude culminating on the meridian.
func Midheaven(ramc, eps float64) float64 {
	return eclipticFromRA(ramc, eps)
}

// Cusps computes the twelve house cusps for the given system. Placidus is
// undefined inside the polar circles; there the result falls back to
// Porphyry and reports it in Houses.System.
func Cusps(ramc, eps, lat float64, system ephemeris.HouseSystem) ephemeris.Houses {
	asc := Ascendant(ramc, eps, lat)
	mc := Midheaven(ramc, eps)

	h := ephemeris.Houses{Ascendant: asc, MC: mc, System: system}

	switch system {
	case ephemeris.HouseEqual:
		for i := range h.Cusps {
			h.Cusps[i] = zodiac.Normalize(asc + 30*float64(i))
		}
		return h
	case ephemeris.HousePlacidus:
		if cusps, ok := placidus(ramc, eps, lat, asc, mc); ok {
			h.Cusps = cusps
			return h
		}
		h.System = ephemeris.HousePorphyry
	}

	h.Cusps = porphyry(asc, mc)
	return h
}

// placidus trisects the diurnal and nocturnal semi-arcs of each cusp point.
func placidus(ramc, eps, lat, asc, mc float64) ([12]float64, bool) {
	var cusps [12]float64

	quadrant := []struct {
		house    int
		fraction float64
		below    bool
	}{
		{11, 1.0 / 3, false},
		{12, 2.0 / 3, false},
		{2, 1.0 / 3, true},
		{3, 2.0 / 3, true},
	}

	for _, q := range quadrant {
		lon, ok := placidusCusp(ramc, eps, lat, q.fraction, q.below)
		if !ok {
			return cusps, false
		}
		cusps[q.house-1] = lon
	}

	cusps[0] = asc
	cusps[9] = mc
	fillOpposites(&cusps)
	return cusps, true
}

// placidusCusp iterates on the right ascension of the cusp point until the
// point sits the requested fraction of its semi-arc from the meridian
// (above the horizon) or from the horizon (below it).
func placidusCusp(ramc, eps, lat, fraction float64, below bool) (float64, bool) {
	ra := ramc + 90*fraction
	if below {
		ra = ramc + 90 + 90*fraction
	}

	for i := 0; i < placidusMaxIter; i++ {
		lon := eclipticFromRA(ra, eps)
		dec := math.Asin(math.Sin(eps*deg) * math.Sin(lon*deg))

		x := -math.Tan(lat*deg) * math.Tan(dec)
		if x < -1 || x > 1 {
			// circumpolar point, no semi-arc
			return 0, false
		}
		dsa := math.Acos(x) / deg

		next := ramc + fraction*dsa
		if below {
			next = ramc + dsa + fraction*(180-dsa)
		}

		done := math.Abs(next-ra) < placidusTolerance
		ra = next
		if done {
			break
		}
	}

	return eclipticFromRA(ra, eps), true
}

func porphyry(asc, mc float64) [12]float64 {
	var cusps [12]float64

	upper := zodiac.Normalize(asc - mc)
	lower := zodiac.Normalize(mc + 180 - asc)

	cusps[0] = asc
	cusps[9] = mc
	cusps[10] = zodiac.Normalize(mc + upper/3)
	cusps[11] = zodiac.Normalize(mc + 2*upper/3)
	cusps[1] = zodiac.Normalize(asc + lower/3)
	cusps[2] = zodiac.Normalize(asc + 2*lower/3)
	fillOpposites(&cusps)
	return cusps
}

// fillOpposites derives houses 4-9 from 10-12 and 1-3.
func fillOpposites(cusps *[12]float64) {
	for _, i := range []int{0, 1, 2, 9, 10, 11} {
		cusps[(i+6)%12] = zodiac.Normalize(cusps[i] + 180)
	}
}

// eclipticFromRA returns the longitude of the ecliptic point with right
// ascension ra.
func eclipticFromRA(ra, eps float64) float64 {
	return zodiac.Normalize(math.Atan2(math.Sin(ra*deg), math.Cos(ra*deg)*math.Cos(eps*deg)) / deg)
}
