package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	resortbill "github.com/alnah/go-resortbill"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake exporter and environment
// ---------------------------------------------------------------------------

var testNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

// fakeExporter records exports and returns a canned PDF.
type fakeExporter struct {
	mu      sync.Mutex
	err     error
	failFor string // Guest name whose export fails with errFake
	calls  []resortbill.BookingInput
	closed bool
}

func (f *fakeExporter) Export(ctx context.Context, in resortbill.BookingInput) (*resortbill.ExportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	if f.failFor != "" && in.GuestName == f.failFor {
		return nil, errFake
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.EnsureBookingID(testNow, nil)
	return &resortbill.ExportResult{
		BookingID: in.BookingID,
		FileName:  "DreamyVacations_" + in.BookingID + ".pdf",
		PDF:       []byte("%PDF-1.4 fake " + in.GuestName),
		HTML:      []byte("<html>" + in.GuestName + "</html>"),
		Pages:     resortbill.PageCount,
	}, nil
}

func (f *fakeExporter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeExporter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeFactory builds fakeExporters and remembers them.
type fakeFactory struct {
	mu        sync.Mutex
	err       error // Returned by the factory itself
	exportErr error // Installed on every exporter
	failFor   string
	made      []*fakeExporter
	opts      [][]resortbill.Option
}

func (ff *fakeFactory) New(opts ...resortbill.Option) (BillExporter, error) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	ff.opts = append(ff.opts, opts)
	if ff.err != nil {
		return nil, ff.err
	}
	exp := &fakeExporter{err: ff.exportErr, failFor: ff.failFor}
	ff.made = append(ff.made, exp)
	return exp, nil
}

func (ff *fakeFactory) exporters() []*fakeExporter {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return append([]*fakeExporter(nil), ff.made...)
}

// testEnv returns an environment writing to buffers, with a fixed clock and
// only the given variables set.
func testEnv(vars map[string]string, ff *fakeFactory) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	if ff == nil {
		ff = &fakeFactory{}
	}
	env := &Environment{
		Now:    func() time.Time { return testNow },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewExporter: ff.New,
	}
	return env, &stdout, &stderr
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// bookingYAML returns a valid booking file for guest.
func bookingYAML(guest string) string {
	return fmt.Sprintf(`guestName: %s
checkInDate: "2024-06-10"
checkOutDate: "2024-06-13"
roomType: Cottage
numRooms: 2
paymentMethod: perRoom
amtPerRoom: 3500
advanceCollected: 2000
breakfast:
  include: true
  items: [Idli, Poori]
`, guest)
}

var errFake = errors.New("fake failure")
