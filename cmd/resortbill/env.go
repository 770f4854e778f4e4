package main

import (
	"context"
	"io"
	"os"
	"time"

	resortbill "github.com/alnah/go-resortbill"
)

// BillExporter produces the PDF of one booking.
type BillExporter interface {
	Export(ctx context.Context, in resortbill.BookingInput) (*resortbill.ExportResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ BillExporter = (*resortbill.Exporter)(nil)

// ExporterFactory creates one exporter; each owns its own browser.
type ExporterFactory func(opts ...resortbill.Option) (BillExporter, error)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, environment lookup, and exporter creation.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	NewExporter ExporterFactory
}

// DefaultEnv returns production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewExporter: func(opts ...resortbill.Option) (BillExporter, error) {
			return resortbill.NewExporter(opts...)
		},
	}
}
