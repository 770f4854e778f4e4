package resortbill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-resortbill/internal/process"
)

// Export viewport: 210mm at 96 dpi.
const (
	viewportWidthPx  = 794
	viewportHeightPx = 1123
)

var errNoLayoutBox = errors.New("element has no layout box")

// box is a rectangle in CSS pixels.
type box struct {
	X, Y, Width, Height float64
}

// pageCapture is one rasterized page. Logo is the first logo slot on the
// page, relative to the page's top-left corner, or nil.
type pageCapture struct {
	Image  []byte // JPEG
	Width  float64
	Height float64
	Logo   *box
}

// rasterizer captures every .page element of an HTML file in order.
type rasterizer interface {
	Rasterize(ctx context.Context, htmlPath string) ([]pageCapture, error)
	Close() error
}

var _ rasterizer = (*rodRasterizer)(nil)

// rodRasterizer drives headless Chrome through go-rod. The browser is
// launched on first use and reused until Close.
type rodRasterizer struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	timeout     time.Duration
	settleDelay time.Duration
	scale       float64
	quality     int
	logger      *slog.Logger
}

func newRodRasterizer(cfg settings) *rodRasterizer {
	return &rodRasterizer{
		timeout:     cfg.timeout,
		settleDelay: cfg.settleDelay,
		scale:       cfg.scale,
		quality:     cfg.jpegQuality,
		logger:      cfg.logger,
	}
}

// newBrowserLauncher returns a launcher honoring ROD_BROWSER_BIN,
// ROD_NO_SANDBOX and CI.
func newBrowserLauncher() *launcher.Launcher {
	l := launcher.New()

	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// Containers and CI runners usually lack the namespaces the sandbox needs.
	if os.Getenv("CI") == "true" || bin != "" || isTruthy(os.Getenv("ROD_NO_SANDBOX")) {
		l = l.NoSandbox(true)
	}
	return l
}

func isTruthy(s string) bool {
	switch s {
	case "1", "true", "TRUE", "True", "yes":
		return true
	}
	return false
}

func (r *rodRasterizer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := newBrowserLauncher()
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return nil
}

// Close shuts the browser down and kills any helper process it left behind.
func (r *rodRasterizer) Close() error {
	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	if r.launcher != nil {
		if kerr := process.KillProcessGroup(r.launcher.PID()); kerr != nil {
			r.logger.Debug("browser process group already gone", "error", kerr)
		}
		r.launcher.Kill()
		r.launcher.Cleanup()
	}
	r.browser = nil
	r.launcher = nil
	return err
}

// Rasterize loads htmlPath at the export viewport, waits the settle delay
// and screenshots each .page element one after the other.
func (r *rodRasterizer) Rasterize(ctx context.Context, htmlPath string) ([]pageCapture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()
	p := page.Context(ctx)

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidthPx,
		Height:            viewportHeightPx,
		DeviceScaleFactor: r.scale,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}
	if err := (proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: 255, G: 255, B: 255},
	}).Call(p); err != nil {
		return nil, fmt.Errorf("%w: setting background: %v", ErrPageCreate, err)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := p.Timeout(timeout).Navigate("file://" + htmlPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Images may still be decoding after the load event.
	if err := sleepContext(ctx, r.settleDelay); err != nil {
		return nil, err
	}

	pages, err := p.Elements(".page")
	if err != nil {
		return nil, fmt.Errorf("%w: locating pages: %v", ErrRasterize, err)
	}

	captures := make([]pageCapture, 0, len(pages))
	for i, el := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := r.capturePage(el)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrRasterize, i+1, err)
		}
		captures = append(captures, c)
	}
	return captures, nil
}

func (r *rodRasterizer) capturePage(el *rod.Element) (pageCapture, error) {
	pageBox, err := elementBox(el)
	if err != nil {
		return pageCapture{}, err
	}

	c := pageCapture{Width: pageBox.Width, Height: pageBox.Height}

	// Both boxes are measured before the screenshot scrolls the page, so
	// their difference is scroll-independent.
	if logos, err := el.Elements("[data-pdf-logo]"); err == nil && len(logos) > 0 {
		if lb, err := elementBox(logos[0]); err == nil {
			c.Logo = &box{
				X:      lb.X - pageBox.X,
				Y:      lb.Y - pageBox.Y,
				Width:  lb.Width,
				Height: lb.Height,
			}
		} else {
			r.logger.Warn("logo slot not measurable", "error", err)
		}
	}

	img, err := el.Screenshot(proto.PageCaptureScreenshotFormatJpeg, r.quality)
	if err != nil {
		return pageCapture{}, fmt.Errorf("screenshot: %w", err)
	}
	c.Image = img
	return c, nil
}

func elementBox(el *rod.Element) (box, error) {
	shape, err := el.Shape()
	if err != nil {
		return box{}, err
	}
	rect := shape.Box()
	if rect == nil {
		return box{}, errNoLayoutBox
	}
	return box{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
