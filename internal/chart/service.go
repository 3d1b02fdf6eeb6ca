// Package chart turns a birth moment and place into sun, moon and
// ascendant signs.
package chart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/newthinker/natal/internal/core"
	"github.com/newthinker/natal/internal/ephemeris"
	"github.com/newthinker/natal/internal/zodiac"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Request is a birth moment in UT and a place in degrees, east longitude
// positive.
type Request struct {
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	Latitude  float64
	Longitude float64
}

// Recorder receives calculation metrics. *metrics.Registry satisfies it.
type Recorder interface {
	RecordChart(status string)
	RecordEphemerisCall(call, status string, duration float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordChart(string)                          {}
func (nopRecorder) RecordEphemerisCall(string, string, float64) {}

// Service calculates charts through an ephemeris provider
type Service struct {
	provider    ephemeris.Provider
	bodyOpts    ephemeris.Options
	houseOpts   ephemeris.Options
	callTimeout time.Duration
	recorder    Recorder
	logger      *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithCallTimeout bounds every provider call. Zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.callTimeout = d
	}
}

// WithSiderealHouses applies the sidereal correction to the houses call.
func WithSiderealHouses(enabled bool) Option {
	return func(s *Service) {
		if enabled {
			s.houseOpts.Sidereal = s.bodyOpts.Sidereal
		} else {
			s.houseOpts.Sidereal = ephemeris.SiderealTropical
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a chart service. Body longitudes are Lahiri sidereal
// and houses are Placidus; houses stay tropical unless WithSiderealHouses
// is given.
func NewService(provider ephemeris.Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		bodyOpts: ephemeris.DefaultOptions(),
		houseOpts: ephemeris.Options{
			Sidereal:    ephemeris.SiderealTropical,
			HouseSystem: ephemeris.HousePlacidus,
		},
		recorder: nopRecorder{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// Calculate computes the chart for req. The three provider calls run
// concurrently; the first failure cancels the others and is returned
// without any partial chart.
func (s *Service) Calculate(ctx context.Context, req Request) (*core.Chart, error) {
	chart, err := s.calculate(ctx, req)
	if err != nil {
		s.recorder.RecordChart("error")
		return nil, err
	}
	s.recorder.RecordChart("success")
	return chart, nil
}

func (s *Service) calculate(ctx context.Context, req Request) (*core.Chart, error) {
	ut, err := ephemeris.UniversalTime(req.Hour, req.Minute)
	if err != nil {
		return nil, err
	}
	jd, err := ephemeris.JulianDay(req.Year, req.Month, req.Day, ut)
	if err != nil {
		return nil, err
	}

	var (
		sun, moon ephemeris.BodyPosition
		houses    ephemeris.Houses
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		return s.call(ctx, "sun", func(ctx context.Context) (err error) {
			sun, err = s.provider.BodyLongitude(ctx, jd, ephemeris.BodySun, s.bodyOpts)
			return err
		})
	})
	p.Go(func(ctx context.Context) error {
		return s.call(ctx, "moon", func(ctx context.Context) (err error) {
			moon, err = s.provider.BodyLongitude(ctx, jd, ephemeris.BodyMoon, s.bodyOpts)
			return err
		})
	})
	p.Go(func(ctx context.Context) error {
		return s.call(ctx, "houses", func(ctx context.Context) (err error) {
			houses, err = s.provider.Houses(ctx, jd, req.Latitude, req.Longitude, s.houseOpts)
			return err
		})
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	for name, lon := range map[string]float64{
		"sun":       sun.Longitude,
		"moon":      moon.Longitude,
		"ascendant": houses.Ascendant,
	} {
		if math.IsNaN(lon) || math.IsInf(lon, 0) {
			return nil, core.WrapError(core.ErrEphemeris, fmt.Errorf("%s longitude is not finite", name))
		}
	}

	asc := zodiac.SignOf(houses.Ascendant)
	chart := &core.Chart{
		Ascendant:  asc,
		Sun:        zodiac.SignOf(sun.Longitude),
		Moon:       zodiac.SignOf(moon.Longitude),
		ChartRuler: zodiac.Ruler(asc),
	}

	s.logger.Debug("chart calculated",
		zap.Float64("jd", jd),
		zap.Float64("sun", sun.Longitude),
		zap.Float64("moon", moon.Longitude),
		zap.Float64("ascendant", houses.Ascendant),
		zap.String("house_system", string(houses.System)),
	)

	return chart, nil
}

// call runs one provider request under the call timeout and records it.
func (s *Service) call(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)

	status := "success"
	if err != nil {
		status = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			err = core.WrapError(core.ErrEphemerisTimeout, fmt.Errorf("%s: %w", name, err))
		}
	}
	s.recorder.RecordEphemerisCall(name, status, time.Since(start).Seconds())

	return err
}
