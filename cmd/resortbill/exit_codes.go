package main

import (
	"errors"
	"os"

	resortbill "github.com/alnah/go-resortbill"
	"github.com/alnah/go-resortbill/internal/config"
	"github.com/alnah/go-resortbill/internal/dateutil"
)

// Exit codes for the resortbill CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every bill generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or booking
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, resortbill.ErrBrowserConnect) ||
		errors.Is(err, resortbill.ErrPageCreate) ||
		errors.Is(err, resortbill.ErrPageLoad) ||
		errors.Is(err, resortbill.ErrRasterize) ||
		errors.Is(err, resortbill.ErrPageCount) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, config.ErrBookingNotFound) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldInvalid) ||
		errors.Is(err, config.ErrBookingParse) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, resortbill.ErrRoomTypeRequired) ||
		errors.Is(err, resortbill.ErrInvalidDateRange) ||
		errors.Is(err, resortbill.ErrInvalidBooking) ||
		errors.Is(err, resortbill.ErrLogoTooLarge) ||
		errors.Is(err, resortbill.ErrLogoFormat) ||
		errors.Is(err, resortbill.ErrLogoDecode) ||
		errors.Is(err, resortbill.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
