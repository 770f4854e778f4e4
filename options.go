package resortbill

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Export defaults.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultSettleDelay = 600 * time.Millisecond
	DefaultScale       = 2.0
	DefaultJPEGQuality = 90
)

// Option configures a Renderer, Exporter or Session.
type Option func(*settings)

type settings struct {
	resort      Resort
	assetPath   string
	logger      *slog.Logger
	timeout     time.Duration
	settleDelay time.Duration
	scale       float64
	jpegQuality int
	now         func() time.Time
	rnd         *rand.Rand
	rasterizer  rasterizer // nil = headless Chrome
}

func newSettings(opts []Option) settings {
	s := settings{
		resort:      DefaultResort(),
		logger:      slog.New(slog.DiscardHandler),
		timeout:     DefaultTimeout,
		settleDelay: DefaultSettleDelay,
		scale:       DefaultScale,
		jpegQuality: DefaultJPEGQuality,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithResort replaces the built-in resort profile.
func WithResort(r Resort) Option {
	return func(s *settings) {
		s.resort = r
	}
}

// WithAssetPath loads bill.html and bill.css from a custom directory,
// falling back to the embedded copies for missing files.
func WithAssetPath(path string) Option {
	return func(s *settings) {
		s.assetPath = path
	}
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds page loading in the browser.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("resortbill: WithTimeout duration must be positive")
	}
	return func(s *settings) {
		s.timeout = d
	}
}

// WithSettleDelay sets the pause between page load and capture that lets
// images finish decoding. Zero disables it. Panics if d < 0.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("resortbill: WithSettleDelay duration must not be negative")
	}
	return func(s *settings) {
		s.settleDelay = d
	}
}

// WithScale sets the device scale factor used for capture.
// Panics outside [1, 4].
func WithScale(f float64) Option {
	if f < 1 || f > 4 {
		panic("resortbill: WithScale factor must be between 1 and 4")
	}
	return func(s *settings) {
		s.scale = f
	}
}

// WithJPEGQuality sets the page image quality. Panics outside [1, 100].
func WithJPEGQuality(q int) Option {
	if q < 1 || q > 100 {
		panic("resortbill: WithJPEGQuality must be between 1 and 100")
	}
	return func(s *settings) {
		s.jpegQuality = q
	}
}

// WithClock overrides the time source used for booking dates and IDs.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand sets the random source for booking ID suffixes.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) {
		s.rnd = r
	}
}

func withRasterizer(r rasterizer) Option {
	return func(s *settings) {
		s.rasterizer = r
	}
}
