package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	resortbill "github.com/alnah/go-resortbill"
	"github.com/alnah/go-resortbill/internal/config"
	"github.com/alnah/go-resortbill/internal/fileutil"
)

// prepareBooking loads, validates and identifies one booking. The booking
// ID is assigned here so the preview, the quote and a later render of an
// exported booking file all agree on it.
func prepareBooking(path, logoOverride string, cfg *config.Config, now time.Time) (resortbill.BookingInput, error) {
	in, err := loadBooking(path, logoOverride, cfg.Assets.Logo, now)
	if err != nil {
		return resortbill.BookingInput{}, err
	}
	if err := in.Validate(); err != nil {
		return resortbill.BookingInput{}, fmt.Errorf("%s: %w", path, err)
	}
	in.EnsureBookingID(now, nil)
	return in, nil
}

// singleBooking returns the only positional argument.
func singleBooking(positional []string) (string, error) {
	switch len(positional) {
	case 0:
		return "", ErrNoInput
	case 1:
		return positional[0], nil
	default:
		return "", fmt.Errorf("%w: expected one booking file, got %d", ErrInvalidFlag, len(positional))
	}
}

// runPreview renders the on-screen HTML bill of one booking.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	path, err := singleBooking(positional)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}

	in, err := prepareBooking(path, flags.logo, cfg, env.Now())
	if err != nil {
		return err
	}

	opts := []resortbill.Option{resortbill.WithResort(resortFromConfig(cfg))}
	assetPath := cfg.Assets.BasePath
	if flags.assetPath != "" {
		assetPath = flags.assetPath
	}
	if assetPath != "" {
		opts = append(opts, resortbill.WithAssetPath(assetPath))
	}

	r, err := resortbill.NewRenderer(opts...)
	if err != nil {
		return err
	}
	html, err := r.Render(ctx, resortbill.Derive(in), resortbill.ModePreview)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := io.WriteString(env.Stdout, html)
		return err
	}

	name := strings.TrimSuffix(resortFromConfig(cfg).FileName(in.BookingID), ".pdf") + ".html"
	out := fileutil.ResolveOutputPath(flags.output, name, ".html")
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
		}
	}
	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(out, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
	}
	return nil
}
