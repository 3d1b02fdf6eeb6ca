package meeus

import "github.com/newthinker/natal/internal/ephemeris"

const j2000 = 2451545.0

// DeltaT returns TT-UT in seconds for the given Julian day (UT), using the
// Espenak-Meeus polynomial fits.
func DeltaT(jd float64) float64 {
	y := 2000 + (jd-j2000)/365.25

	switch {
	case y >= 2005 && y < 2050:
		t := y - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	case y >= 1986 && y < 2005:
		t := y - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t +
			0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	case y >= 1961 && y < 1986:
		t := y - 1975
		return 45.45 + 1.067*t - t*t/260 - t*t*t/718
	case y >= 1941 && y < 1961:
		t := y - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case y >= 1920 && y < 1941:
		t := y - 1920
		return 21.20 + 0.84493*t - 0.076100*t*t + 0.0020936*t*t*t
	case y >= 1900 && y < 1920:
		t := y - 1900
		return -2.79 + 1.494119*t - 0.0598939*t*t + 0.0061966*t*t*t - 0.000197*t*t*t*t
	case y >= 2050 && y < 2150:
		u := (y - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-y)
	default:
		u := (y - 1820) / 100
		return -20 + 32*u*u
	}
}

// Ayanamsha returns the offset in degrees between the tropical and the
// sidereal zodiac at the given Julian ephemeris day.
func Ayanamsha(mode ephemeris.SiderealMode, jde float64) float64 {
	switch mode {
	case ephemeris.SiderealLahiri:
		// 23°51'25.5" at J2000 advancing with general precession
		T := (jde - j2000) / 36525
		return 23.857092 + 1.3969713*T + 0.000309*T*T
	default:
		return 0
	}
}
