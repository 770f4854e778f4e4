package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// exportFlags tunes the browser capture. Zero values mean "not set".
type exportFlags struct {
	settle    time.Duration
	timeout   time.Duration
	scale     float64
	quality   int
	assetPath string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	export  exportFlags
	output  string
	logo    string
	workers int
	html    bool
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common    commonFlags
	output    string
	logo      string
	assetPath string
}

// quoteFlags holds flags for the quote command.
type quoteFlags struct {
	common commonFlags
	format string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addExportFlags adds capture tuning flags to a FlagSet.
func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.DurationVar(&f.settle, "settle", 0, "delay before capture (default 600ms)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "page load timeout (default 30s)")
	fs.Float64Var(&f.scale, "scale", 0, "device scale factor, 1-4 (default 2)")
	fs.IntVar(&f.quality, "quality", 0, "page JPEG quality, 1-100 (default 90)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template/style directory")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory or .pdf file")
	fs.StringVarP(&f.logo, "logo", "l", "", "logo image (PNG or JPEG)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exports (0 = auto)")
	fs.BoolVar(&f.html, "html", false, "also write the export-mode HTML")
	addCommonFlags(fs, &f.common)
	addExportFlags(fs, &f.export)

	fs.Usage = func() { printRenderUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, usage io.Writer) (*previewFlags, []string, error) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &previewFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output .html file or directory")
	fs.StringVarP(&f.logo, "logo", "l", "", "logo image (PNG or JPEG)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template/style directory")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printPreviewUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// parseQuoteFlags parses quote command flags and returns positional args.
func parseQuoteFlags(args []string, usage io.Writer) (*quoteFlags, []string, error) {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &quoteFlags{}

	var asJSON, asYAML bool
	fs.BoolVar(&asJSON, "json", false, "print JSON")
	fs.BoolVar(&asYAML, "yaml", false, "print YAML")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printQuoteUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}

	switch {
	case asJSON:
		f.format = "json"
	case asYAML:
		f.format = "yaml"
	default:
		f.format = "text"
	}
	return f, fs.Args(), nil
}

// flagError tags parse failures as usage errors. A help request passes
// through unchanged.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidFlag, err)
}

// parseDoctorFlags parses doctor command flags. Positional args are rejected.
func parseDoctorFlags(args []string, usage io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &doctorFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print JSON")

	fs.Usage = func() { printDoctorUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, flagError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrInvalidFlag, fs.Arg(0))
	}
	return f, nil
}
