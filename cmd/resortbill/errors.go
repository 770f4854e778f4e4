package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	resortbill "github.com/alnah/go-resortbill"
	"github.com/alnah/go-resortbill/internal/config"
	"github.com/alnah/go-resortbill/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no booking file specified")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidFlag    = errors.New("invalid flag value")
	ErrOutputConflict = errors.New("output must be a directory when rendering several bookings")
	ErrUnknownCommand = errors.New("unknown command")
	ErrExporterInit   = errors.New("failed to initialize exporter")
	ErrNotReady       = errors.New("system not ready for PDF export")
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, resortbill.ErrBrowserConnect), errors.Is(err, resortbill.ErrPageCreate):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, resortbill.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if dir, derr := os.UserConfigDir(); derr == nil {
			searched = append(searched, filepath.Join(dir, "resortbill", "config.yaml"))
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, resortbill.ErrLogoTooLarge):
		return hints.ForLogoTooLarge(resortbill.MaxLogoSize)
	case errors.Is(err, resortbill.ErrInvalidDateRange):
		return hints.ForDateRange()
	case errors.Is(err, resortbill.ErrRoomTypeRequired):
		names := make([]string, len(resortbill.RoomTypes))
		for i, rt := range resortbill.RoomTypes {
			names[i] = string(rt)
		}
		return hints.ForRoomType(names)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
