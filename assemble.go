package resortbill

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/phpdave11/gofpdf"
)

// A4 portrait in millimetres.
const (
	a4WidthMM  = 210.0
	a4HeightMM = 297.0
)

const logoImageName = "logo"

var errEmptyLogoBox = errors.New("logo box is empty")

// assembly is the outcome of assemblePDF.
type assembly struct {
	PDF          []byte
	LogoOverlaid int // Pages whose logo was redrawn
}

// assemblePDF places one capture per A4 page and, when a logo is given,
// redraws it sharp over each captured logo slot. Overlay problems are
// logged and skipped; the page image is kept as captured.
func assemblePDF(captures []pageCapture, logo *Logo, title string, logger *slog.Logger) (*assembly, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetTitle(title, true)
	pdf.SetCreator("resortbill", true)

	pageOpts := gofpdf.ImageOptions{ImageType: "JPG"}
	out := &assembly{}

	for i, c := range captures {
		pdf.AddPage()

		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, pageOpts, bytes.NewReader(c.Image))
		pdf.ImageOptions(name, 0, 0, a4WidthMM, a4HeightMM, false, pageOpts, 0, "")
		if !pdf.Ok() {
			return nil, fmt.Errorf("%w: page %d: %v", ErrPDFAssembly, i+1, pdf.Error())
		}

		if logo == nil || c.Logo == nil {
			continue
		}
		if err := overlayLogo(pdf, c, logo); err != nil {
			logger.Warn("logo re-insertion skipped", "page", i+1, "error", err)
			continue
		}
		out.LogoOverlaid++
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFAssembly, err)
	}
	out.PDF = buf.Bytes()
	return out, nil
}

// overlayLogo converts the logo box from CSS pixels to millimetres using
// the page width, paints it white and draws the original logo inside it,
// keeping the logo's aspect ratio. The logo is registered before anything
// is drawn so a bad image leaves the page untouched.
func overlayLogo(pdf *gofpdf.Fpdf, c pageCapture, logo *Logo) error {
	x, y, w, h, err := logoRect(c)
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	if logo.MIME == "image/jpeg" {
		opts.ImageType = "JPG"
	}

	info := pdf.RegisterImageOptionsReader(logoImageName, opts, bytes.NewReader(logo.Data))
	if !pdf.Ok() || info == nil {
		err := pdf.Error()
		pdf.ClearError()
		if err == nil {
			err = errors.New("logo image not registered")
		}
		return err
	}

	dx, dy, dw, dh := fitRect(x, y, w, h, info.Width(), info.Height())

	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(x, y, w, h, "F")
	pdf.ImageOptions(logoImageName, dx, dy, dw, dh, false, opts, 0, "")
	if !pdf.Ok() {
		err := pdf.Error()
		pdf.ClearError()
		return err
	}
	return nil
}

// logoRect returns the capture's logo box in millimetres.
func logoRect(c pageCapture) (x, y, w, h float64, err error) {
	if c.Logo == nil || c.Width <= 0 {
		return 0, 0, 0, 0, errEmptyLogoBox
	}
	scale := a4WidthMM / c.Width
	x, y = c.Logo.X*scale, c.Logo.Y*scale
	w, h = c.Logo.Width*scale, c.Logo.Height*scale
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, errEmptyLogoBox
	}
	return x, y, w, h, nil
}

// fitRect centers an iw×ih image inside the box at the largest size that
// fits. A degenerate image fills the box.
func fitRect(x, y, w, h, iw, ih float64) (float64, float64, float64, float64) {
	if iw <= 0 || ih <= 0 {
		return x, y, w, h
	}
	ratio := math.Min(w/iw, h/ih)
	dw, dh := iw*ratio, ih*ratio
	return x + (w-dw)/2, y + (h-dh)/2, dw, dh
}
