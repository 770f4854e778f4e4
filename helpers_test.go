package resortbill

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand/v2"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func testOptions(extra ...Option) []Option {
	opts := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	}
	return append(opts, extra...)
}

// validInput returns a booking that passes Validate.
func validInput() BookingInput {
	in := NewBookingInput(fixedNow)
	in.GuestName = "Asha Rao"
	in.CheckInDate = "2024-06-10"
	in.CheckOutDate = "2024-06-13"
	in.RoomType = RoomTypeCottage
	in.NumRooms = 2
	in.PaymentMethod = PaymentFull
	in.RoomRent = 5000
	return in
}

func solidImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(w, h)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(w, h), &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func testLogo(t *testing.T) *Logo {
	t.Helper()
	data := pngBytes(t, 40, 20)
	logo, err := LoadLogo(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("LoadLogo: %v", err)
	}
	return logo
}

// mockRasterizer returns one capture per .page section found in the HTML
// file, unless a fixed page count or error is configured.
type mockRasterizer struct {
	mu       sync.Mutex
	pages    int // >0 overrides the count found in the file
	err      error
	panicMsg string
	block    chan struct{} // when set, Rasterize waits on it
	started  chan struct{} // closed when Rasterize starts
	image    []byte

	calls    int
	lastPath string
	lastHTML string
	closed   bool
}

func (m *mockRasterizer) Rasterize(ctx context.Context, htmlPath string) ([]pageCapture, error) {
	m.mu.Lock()
	m.calls++
	m.lastPath = htmlPath
	started, block := m.started, m.block
	m.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.err != nil {
		return nil, m.err
	}

	content, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.lastHTML = string(content)
	m.mu.Unlock()

	n := m.pages
	if n == 0 {
		n = strings.Count(string(content), `class="page `)
	}
	captures := make([]pageCapture, n)
	for i := range captures {
		captures[i] = pageCapture{
			Image:  m.image,
			Width:  viewportWidthPx,
			Height: viewportHeightPx,
			Logo:   &box{X: 57, Y: 57, Width: 60, Height: 60},
		}
	}
	return captures, nil
}

func (m *mockRasterizer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func newMockRasterizer(t *testing.T) *mockRasterizer {
	t.Helper()
	return &mockRasterizer{image: jpegBytes(t, 79, 112)}
}
