// internal/ephemeris/factory/factory.go
package factory

import (
	"fmt"

	"github.com/newthinker/natal/internal/config"
	"github.com/newthinker/natal/internal/ephemeris"
	"github.com/newthinker/natal/internal/ephemeris/meeus"
	"github.com/newthinker/natal/internal/ephemeris/remote"
)

// New creates an ephemeris provider based on configuration.
func New(cfg config.EphemerisConfig) (ephemeris.Provider, error) {
	switch cfg.Provider {
	case "", "meeus":
		return meeus.New(), nil
	case "remote":
		p, err := remote.New(remote.Config{
			BaseURL: cfg.Remote.BaseURL,
			APIKey:  cfg.Remote.APIKey,
			Timeout: cfg.Remote.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown ephemeris provider: %s", cfg.Provider)
	}
}
