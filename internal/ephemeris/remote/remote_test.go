package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newthinker/natal/internal/core"
	"github.com/newthinker/natal/internal/ephemeris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_ImplementsInterface(t *testing.T) {
	var _ ephemeris.Provider = (*Provider)(nil)
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	p, err := New(Config{BaseURL: "http://ephemeris.local/"})
	require.NoError(t, err)
	assert.Equal(t, "http://ephemeris.local", p.baseURL)
	assert.Equal(t, defaultTimeout, p.client.Timeout)
	assert.Equal(t, "remote", p.Name())
}

func TestBodyLongitude_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, positionsPath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req positionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2451545.0, req.JD)
		assert.Equal(t, ephemeris.BodyMoon, req.Body)
		assert.Equal(t, ephemeris.SiderealLahiri, req.Sidereal)

		json.NewEncoder(w).Encode(positionResponse{Longitude: 199.5, Latitude: 5.1})
	}))
	defer srv.Close()

	p, err := New(Config{BaseURL: srv.URL, APIKey: "secret"})
	require.NoError(t, err)

	pos, err := p.BodyLongitude(context.Background(), 2451545.0, ephemeris.BodyMoon, ephemeris.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 199.5, pos.Longitude)
	assert.Equal(t, 5.1, pos.Latitude)
}

func TestBodyLongitude_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(positionResponse{Error: "jd beyond ephemeris range"})
	}))
	defer srv.Close()

	p, _ := New(Config{BaseURL: srv.URL})
	_, err := p.BodyLongitude(context.Background(), 1e9, ephemeris.BodySun, ephemeris.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEphemeris)

	var coreErr *core.Error
	require.ErrorAs(t, err, &coreErr)
	assert.Equal(t, "jd beyond ephemeris range", coreErr.Detail())
}

func TestBodyLongitude_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	p, _ := New(Config{BaseURL: srv.URL})
	_, err := p.BodyLongitude(context.Background(), 2451545.0, ephemeris.BodySun, ephemeris.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEphemeris)
	assert.Contains(t, err.Error(), "status=502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestBodyLongitude_StatusWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p, _ := New(Config{BaseURL: srv.URL})
	_, err := p.BodyLongitude(context.Background(), 2451545.0, ephemeris.BodySun, ephemeris.DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
}

func TestHouses_Success(t *testing.T) {
	cusps := []float64{100, 125, 150, 177, 210, 245, 280, 305, 330, 357, 30, 65}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, housesPath, r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req housesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 28.6, req.Latitude)
		assert.Equal(t, 77.2, req.Longitude)
		assert.Equal(t, ephemeris.HousePlacidus, req.HouseSystem)

		json.NewEncoder(w).Encode(housesResponse{
			Cusps:     cusps,
			Ascendant: 100,
			MC:        357,
		})
	}))
	defer srv.Close()

	p, _ := New(Config{BaseURL: srv.URL})
	h, err := p.Houses(context.Background(), 2451545.0, 28.6, 77.2, ephemeris.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 100.0, h.Ascendant)
	assert.Equal(t, 357.0, h.MC)
	assert.Equal(t, 65.0, h.Cusps[11])
	assert.Equal(t, ephemeris.HousePlacidus, h.System)
}

func TestHouses_WrongCuspCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(housesResponse{Cusps: []float64{1, 2, 3}, Ascendant: 1})
	}))
	defer srv.Close()

	p, _ := New(Config{BaseURL: srv.URL})
	_, err := p.Houses(context.Background(), 2451545.0, 0, 0, ephemeris.DefaultOptions())
	assert.ErrorIs(t, err, core.ErrEphemeris)
}

func TestHouses_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(housesResponse{Error: "invalid latitude"})
	}))
	defer srv.Close()

	p, _ := New(Config{BaseURL: srv.URL})
	_, err := p.Houses(context.Background(), 2451545.0, 95, 0, ephemeris.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEphemeris)
	assert.Contains(t, err.Error(), "invalid latitude")
}

func TestProvider_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	p, _ := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.BodyLongitude(ctx, 2451545.0, ephemeris.BodySun, ephemeris.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
