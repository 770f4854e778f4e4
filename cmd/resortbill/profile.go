package main

import (
	"fmt"
	"io"
	"log/slog"

	resortbill "github.com/alnah/go-resortbill"
	"github.com/alnah/go-resortbill/internal/config"
)

// loadConfig resolves the config from the flag, then RESORTBILL_CONFIG,
// then built-in defaults, and layers environment overrides on top.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// resortFromConfig overlays the non-empty config values on the built-in
// profile.
func resortFromConfig(cfg *config.Config) resortbill.Resort {
	r := resortbill.DefaultResort()
	c := cfg.Resort

	setString(&r.Name, c.Name)
	setString(&r.Address, c.Address)
	setString(&r.MapsURL, c.MapsURL)
	setString(&r.Email, c.Email)
	setString(&r.CheckInTime, c.CheckInTime)
	setString(&r.CheckOutTime, c.CheckOutTime)
	setString(&r.Tagline, c.Tagline)
	setString(&r.FilePrefix, c.FilePrefix)
	setString(&r.Currency, c.Currency)
	setString(&r.DateFormat, c.DateFormat)
	if len(c.Phones) > 0 {
		r.Phones = c.Phones
	}

	applyMeal(&r.Breakfast, cfg.Menus.Breakfast)
	applyMeal(&r.Dinner, cfg.Menus.Dinner)
	applyMeal(&r.Snacks, cfg.Menus.Snacks)
	setString(&r.Lunch.Title, cfg.Menus.Lunch.Title)
	setString(&r.Lunch.Note, cfg.Menus.Lunch.Note)

	if len(cfg.Activities.Free) > 0 {
		r.FreeActivities = cfg.Activities.Free
	}
	paid := cfg.Activities.Paid
	setString(&r.PaidActivity.Name, paid.Name)
	setString(&r.PaidActivity.Note, paid.Note)
	setString(&r.PaidActivity.Unit, paid.Unit)
	if paid.Price > 0 {
		r.PaidActivity.Price = paid.Price
	}

	if len(cfg.Terms.Rules) > 0 {
		r.Rules = make([]resortbill.Rule, len(cfg.Terms.Rules))
		for i, rule := range cfg.Terms.Rules {
			r.Rules[i] = resortbill.Rule{Title: rule.Title, Description: rule.Description}
		}
	}
	setString(&r.Cancellation, cfg.Terms.Cancellation)

	return r
}

func applyMeal(dst *resortbill.MealInfo, src config.MealConfig) {
	setString(&dst.Time, src.Time)
	setString(&dst.Note, src.Note)
	if len(src.Items) > 0 {
		dst.Menu = src.Items
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// newLogger returns a text logger on w: Warn by default, Debug with
// --verbose, Error with --quiet.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// buildOptions turns config and flags into library options. Flags win over
// config values; config values already include environment overrides.
// Out-of-range values are reported as ErrInvalidFlag instead of reaching
// the option constructors, which panic on them.
func buildOptions(cfg *config.Config, f exportFlags, logger *slog.Logger) ([]resortbill.Option, error) {
	opts := []resortbill.Option{
		resortbill.WithResort(resortFromConfig(cfg)),
		resortbill.WithLogger(logger),
	}

	assetPath := cfg.Assets.BasePath
	if f.assetPath != "" {
		assetPath = f.assetPath
	}
	if assetPath != "" {
		opts = append(opts, resortbill.WithAssetPath(assetPath))
	}

	settle, err := cfg.Export.SettleDelayDuration()
	if err != nil {
		return nil, err
	}
	if f.settle != 0 {
		settle = f.settle
	}
	if settle < 0 {
		return nil, fmt.Errorf("%w: --settle must not be negative", ErrInvalidFlag)
	}
	if settle > 0 {
		opts = append(opts, resortbill.WithSettleDelay(settle))
	}

	timeout, err := cfg.Export.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if f.timeout != 0 {
		timeout = f.timeout
	}
	if timeout < 0 {
		return nil, fmt.Errorf("%w: --timeout must be positive", ErrInvalidFlag)
	}
	if timeout > 0 {
		opts = append(opts, resortbill.WithTimeout(timeout))
	}

	scale := cfg.Export.Scale
	if f.scale != 0 {
		scale = f.scale
	}
	if scale != 0 {
		if scale < 1 || scale > 4 {
			return nil, fmt.Errorf("%w: --scale must be between 1 and 4, got %g", ErrInvalidFlag, scale)
		}
		opts = append(opts, resortbill.WithScale(scale))
	}

	quality := cfg.Export.JPEGQuality
	if f.quality != 0 {
		quality = f.quality
	}
	if quality != 0 {
		if quality < 1 || quality > 100 {
			return nil, fmt.Errorf("%w: --quality must be between 1 and 100, got %d", ErrInvalidFlag, quality)
		}
		opts = append(opts, resortbill.WithJPEGQuality(quality))
	}

	return opts, nil
}
