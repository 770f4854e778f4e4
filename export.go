package resortbill

import (
	"context"
	"fmt"

	"github.com/alnah/go-resortbill/internal/fileutil"
)

// ExportResult is a finished bill.
type ExportResult struct {
	BookingID    string
	FileName     string // <prefix>_<bookingId>.pdf
	PDF          []byte
	HTML         []byte // Export-mode document that was rasterized
	Pages        int
	LogoOverlaid bool
}

// Exporter renders a booking and turns it into an A4 PDF. Create with
// NewExporter and Close when done to stop the browser. An Exporter handles
// one export at a time.
type Exporter struct {
	cfg        settings
	renderer   *Renderer
	rasterizer rasterizer
}

// NewExporter creates an Exporter. The browser starts on the first export.
func NewExporter(opts ...Option) (*Exporter, error) {
	return newExporter(newSettings(opts))
}

func newExporter(cfg settings) (*Exporter, error) {
	renderer, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}

	r := cfg.rasterizer
	if r == nil {
		r = newRodRasterizer(cfg)
	}

	return &Exporter{cfg: cfg, renderer: renderer, rasterizer: r}, nil
}

// Renderer returns the renderer used for exports.
func (e *Exporter) Renderer() *Renderer {
	return e.renderer
}

// Export validates in, assigns a booking ID when it has none, and produces
// the PDF. The temporary HTML file and browser page are released whatever
// the outcome. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (e *Exporter) Export(ctx context.Context, in BookingInput) (result *ExportResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	in = in.Clone()
	in.EnsureBookingID(e.cfg.now(), e.cfg.rnd)
	data := Derive(in)

	html, err := e.renderer.Render(ctx, data, ModeExport)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	captures, err := e.rasterizer.Rasterize(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(captures) != e.renderer.PageCount() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrPageCount, len(captures), e.renderer.PageCount())
	}

	doc, err := assemblePDF(captures, in.Logo, e.cfg.resort.Name+" "+in.BookingID, e.cfg.logger)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		BookingID:    in.BookingID,
		FileName:     e.cfg.resort.FileName(in.BookingID),
		PDF:          doc.PDF,
		HTML:         []byte(html),
		Pages:        len(captures),
		LogoOverlaid: doc.LogoOverlaid > 0,
	}, nil
}

// Close releases the browser.
func (e *Exporter) Close() error {
	if e.rasterizer != nil {
		return e.rasterizer.Close()
	}
	return nil
}
