package core

// Sign represents a zodiac sign
type Sign string

const (
	SignAries       Sign = "Aries"
	SignTaurus      Sign = "Taurus"
	SignGemini      Sign = "Gemini"
	SignCancer      Sign = "Cancer"
	SignLeo         Sign = "Leo"
	SignVirgo       Sign = "Virgo"
	SignLibra       Sign = "Libra"
	SignScorpio     Sign = "Scorpio"
	SignSagittarius Sign = "Sagittarius"
	SignCapricorn   Sign = "Capricorn"
	SignAquarius    Sign = "Aquarius"
	SignPisces      Sign = "Pisces"
)

// Signs lists the twelve signs in ecliptic order starting at 0° Aries.
var Signs = [12]Sign{
	SignAries, SignTaurus, SignGemini, SignCancer,
	SignLeo, SignVirgo, SignLibra, SignScorpio,
	SignSagittarius, SignCapricorn, SignAquarius, SignPisces,
}

// IsValid reports whether s is one of the twelve signs
func (s Sign) IsValid() bool {
	for _, sign := range Signs {
		if s == sign {
			return true
		}
	}
	return false
}

// Planet represents a traditional ruling body
type Planet string

const (
	PlanetSun     Planet = "Sun"
	PlanetMoon    Planet = "Moon"
	PlanetMercury Planet = "Mercury"
	PlanetVenus   Planet = "Venus"
	PlanetMars    Planet = "Mars"
	PlanetJupiter Planet = "Jupiter"
	PlanetSaturn  Planet = "Saturn"
)

// Chart is the result of a chart calculation.
type Chart struct {
	Ascendant  Sign   `json:"ascendant"`
	Sun        Sign   `json:"sun"`
	Moon       Sign   `json:"moon"`
	ChartRuler Planet `json:"chartRuler"`
}
