// internal/ephemeris/remote/remote.go
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newthinker/natal/internal/core"
	"github.com/newthinker/natal/internal/ephemeris"
)

const (
	positionsPath = "/v1/positions"
	housesPath    = "/v1/houses"

	defaultTimeout = 30 * time.Second
)

// Config holds the ephemeris service connection settings
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Provider calls an ephemeris service over HTTP.
type Provider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a new remote provider.
func New(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote ephemeris base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "remote"
}

type positionRequest struct {
	JD       float64                `json:"jd"`
	Body     ephemeris.Body         `json:"body"`
	Sidereal ephemeris.SiderealMode `json:"sidereal"`
}

type positionResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Error     string  `json:"error,omitempty"`
}

type housesRequest struct {
	JD          float64                `json:"jd"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	HouseSystem ephemeris.HouseSystem  `json:"house_system"`
	Sidereal    ephemeris.SiderealMode `json:"sidereal"`
}

type housesResponse struct {
	Cusps     []float64             `json:"cusps"`
	Ascendant float64               `json:"ascendant"`
	MC        float64               `json:"mc"`
	System    ephemeris.HouseSystem `json:"system"`
	Error     string                `json:"error,omitempty"`
}

// BodyLongitude requests the position of a body from the service.
func (p *Provider) BodyLongitude(ctx context.Context, jd float64, body ephemeris.Body, opts ephemeris.Options) (ephemeris.BodyPosition, error) {
	req := positionRequest{
		JD:       jd,
		Body:     body,
		Sidereal: opts.Sidereal,
	}

	var resp positionResponse
	if err := p.post(ctx, positionsPath, req, &resp); err != nil {
		return ephemeris.BodyPosition{}, err
	}
	if resp.Error != "" {
		return ephemeris.BodyPosition{}, core.WrapError(core.ErrEphemeris, errors.New(resp.Error))
	}

	return ephemeris.BodyPosition{
		Longitude: resp.Longitude,
		Latitude:  resp.Latitude,
	}, nil
}

// Houses requests house cusps from the service.
func (p *Provider) Houses(ctx context.Context, jd, latitude, longitude float64, opts ephemeris.Options) (ephemeris.Houses, error) {
	req := housesRequest{
		JD:          jd,
		Latitude:    latitude,
		Longitude:   longitude,
		HouseSystem: opts.HouseSystem,
		Sidereal:    opts.Sidereal,
	}

	var resp housesResponse
	if err := p.post(ctx, housesPath, req, &resp); err != nil {
		return ephemeris.Houses{}, err
	}
	if resp.Error != "" {
		return ephemeris.Houses{}, core.WrapError(core.ErrEphemeris, errors.New(resp.Error))
	}
	if len(resp.Cusps) != 12 {
		return ephemeris.Houses{}, core.WrapError(core.ErrEphemeris,
			fmt.Errorf("expected 12 cusps, got %d", len(resp.Cusps)))
	}

	h := ephemeris.Houses{
		Ascendant: resp.Ascendant,
		MC:        resp.MC,
		System:    resp.System,
	}
	copy(h.Cusps[:], resp.Cusps)
	if h.System == "" {
		h.System = opts.HouseSystem
	}
	return h, nil
}

func (p *Provider) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return core.WrapError(core.ErrEphemeris, fmt.Errorf("sending request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.WrapError(core.ErrEphemeris, fmt.Errorf("reading response: %w", err))
	}

	// the service reports calculation errors in the body with any status
	if err := json.Unmarshal(raw, out); err != nil {
		return core.WrapError(core.ErrEphemeris,
			fmt.Errorf("ephemeris service error [status=%d]: %s", resp.StatusCode, truncate(string(raw), 200)))
	}
	if resp.StatusCode != http.StatusOK && errorField(out) == "" {
		return core.WrapError(core.ErrEphemeris,
			fmt.Errorf("ephemeris service error [status=%d]: %s", resp.StatusCode, truncate(string(raw), 200)))
	}
	return nil
}

func errorField(out any) string {
	switch v := out.(type) {
	case *positionResponse:
		return v.Error
	case *housesResponse:
		return v.Error
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
