package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	resortbill "github.com/alnah/go-resortbill"
	"github.com/alnah/go-resortbill/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// renderJob is one booking file to export.
type renderJob struct {
	BookingPath string
	Input       resortbill.BookingInput
}

// RenderResult holds the outcome of a single export.
type RenderResult struct {
	BookingPath string
	OutputPath  string
	BookingID   string
	Err         error
	Duration    time.Duration
}

// renderParams groups parameters shared across the batch.
type renderParams struct {
	output string // Directory, or a .pdf file for a single booking
	html   bool
}

// runRender exports every booking file given on the command line.
// When some bookings fail the others are still written, and the first
// failure is returned so the exit code reflects it.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	output := flags.output
	if output == "" {
		output = cfg.Output.DefaultDir
	}
	if len(positional) > 1 && strings.EqualFold(filepath.Ext(output), ".pdf") {
		return ErrOutputConflict
	}

	// Bookings are read and validated up front so a typo fails fast,
	// before any browser starts.
	now := env.Now()
	jobs := make([]renderJob, 0, len(positional))
	for _, path := range positional {
		in, err := loadBooking(path, flags.logo, cfg.Assets.Logo, now)
		if err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		jobs = append(jobs, renderJob{BookingPath: path, Input: in})
	}

	logger := newLogger(env.Stderr, flags.common)
	opts, err := buildOptions(cfg, flags.export, logger)
	if err != nil {
		return err
	}
	opts = append(opts, resortbill.WithClock(env.Now))

	poolSize := resolvePoolSize(flags.workers, len(jobs))
	logger.Debug("starting export", "bookings", len(jobs), "workers", poolSize)

	pool := NewExporterPool(poolSize, env.NewExporter, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Debug("closing exporters", "error", err)
		}
	}()

	params := &renderParams{output: output, html: flags.html}
	results := renderBatch(ctx, pool, jobs, params)
	if failed := printResults(results, flags.common, env); failed > 0 {
		return fmt.Errorf("%d of %d bookings failed: %w", failed, len(results), firstError(results))
	}
	return nil
}

func firstError(results []RenderResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// renderBatch processes bookings concurrently using the exporter pool.
func renderBatch(ctx context.Context, pool Pool, jobs []renderJob, params *renderParams) []RenderResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))
	results := make([]RenderResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			exp, err := pool.Acquire()
			if err != nil {
				for idx := range queue {
					results[idx] = RenderResult{BookingPath: jobs[idx].BookingPath, Err: err}
				}
				return
			}
			defer pool.Release(exp)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = RenderResult{BookingPath: jobs[idx].BookingPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderOne(ctx, exp, jobs[idx], params)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// renderOne exports a single booking and writes its files.
func renderOne(ctx context.Context, exp BillExporter, job renderJob, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{BookingPath: job.BookingPath}
	finish := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	res, err := exp.Export(ctx, job.Input)
	if err != nil {
		return finish(err)
	}
	result.BookingID = res.BookingID
	result.OutputPath = fileutil.ResolveOutputPath(params.output, res.FileName, ".pdf")

	if dir := filepath.Dir(result.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return finish(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
		}
	}

	if params.html {
		htmlPath := strings.TrimSuffix(result.OutputPath, filepath.Ext(result.OutputPath)) + ".html"
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlPath, res.HTML, filePermissions); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(result.OutputPath, res.PDF, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed exports.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed exports.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs export results and returns the failure count.
func printResults(results []RenderResult, f commonFlags, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.BookingPath, r.Err)
			continue
		}

		if f.quiet {
			continue
		}

		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s [%s] (%v)\n", r.BookingPath, r.OutputPath, r.BookingID, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !f.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
