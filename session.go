package resortbill

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync/atomic"
)

// Session owns one booking being edited. Commands mutate the booking one
// field at a time; derived values are recomputed on every read. A Session
// is meant to be driven from a single goroutine, except that a second
// Export while one is running fails with ErrExportInProgress.
type Session struct {
	cfg       settings
	input     BookingInput
	exporter  *Exporter
	exporting atomic.Bool
}

// NewSession starts a session with a default booking. Options configure
// the underlying Exporter.
func NewSession(opts ...Option) (*Session, error) {
	cfg := newSettings(opts)
	exp, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:      cfg,
		input:    NewBookingInput(cfg.now()),
		exporter: exp,
	}, nil
}

// Input returns a copy of the current booking.
func (s *Session) Input() BookingInput {
	return s.input.Clone()
}

// Data derives the current booking.
func (s *Session) Data() BookingData {
	return Derive(s.Input())
}

// Resort returns the resort profile of the session.
func (s *Session) Resort() Resort {
	return s.cfg.resort
}

// Load replaces the whole booking. An identifier already assigned in the
// session is kept when in has none.
func (s *Session) Load(in BookingInput) {
	id := s.input.BookingID
	s.input = in.Clone()
	if s.input.BookingID == "" {
		s.input.BookingID = id
	}
}

// SetGuestName sets the guest name printed on every page.
func (s *Session) SetGuestName(name string) { s.input.GuestName = name }

// SetBookingDate sets the booking date as YYYY-MM-DD.
func (s *Session) SetBookingDate(date string) { s.input.BookingDate = date }

// SetRoomType selects Room or Cottage.
func (s *Session) SetRoomType(rt RoomType) { s.input.RoomType = rt }

// SetPlatform records where the booking came from.
func (s *Session) SetPlatform(p Platform) { s.input.Platform = p }

// SetRoomRent sets the manual rent used by full payment.
func (s *Session) SetRoomRent(v float64) { s.input.RoomRent = v }

// SetAdvance sets the amount already collected.
func (s *Session) SetAdvance(v float64) { s.input.AdvanceCollected = v }

// SetStayDates sets both stay dates as YYYY-MM-DD strings.
func (s *Session) SetStayDates(checkIn, checkOut string) {
	s.input.CheckInDate = checkIn
	s.input.CheckOutDate = checkOut
}

// SetOccupancy sets the room, adult and child counts.
func (s *Session) SetOccupancy(rooms, adults, children int) {
	s.input.NumRooms = rooms
	s.input.Adults = adults
	s.input.Children = children
}

// SetPaymentMethod switches the rent formula. Rates and the manual rent
// are left as they are.
func (s *Session) SetPaymentMethod(m PaymentMethod) {
	s.input.PaymentMethod = m
}

// SetRates sets the per-adult, per-child and per-room amounts.
func (s *Session) SetRates(perAdult, perChild, perRoom float64) {
	s.input.AmtPerAdult = perAdult
	s.input.AmtPerChild = perChild
	s.input.AmtPerRoom = perRoom
}

// SetMealIncluded shows or hides a meal section.
func (s *Session) SetMealIncluded(m Meal, include bool) error {
	sel, err := s.input.Meal(m)
	if err != nil {
		return err
	}
	sel.Include = include
	return nil
}

// ToggleMealItem selects a menu item, or deselects it when already
// selected.
func (s *Session) ToggleMealItem(m Meal, item string) error {
	sel, err := s.input.Meal(m)
	if err != nil {
		return err
	}
	if slices.Contains(sel.Items, item) {
		sel.Items = slices.DeleteFunc(slices.Clone(sel.Items), func(v string) bool { return v == item })
		return nil
	}
	sel.Items = append(slices.Clone(sel.Items), item)
	return nil
}

// AddCustomItem appends a free-text item. Blank input is ignored.
func (s *Session) AddCustomItem(m Meal, item string) error {
	sel, err := s.input.Meal(m)
	if err != nil {
		return err
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return nil
	}
	sel.CustomItems = append(slices.Clone(sel.CustomItems), item)
	return nil
}

// RemoveCustomItem deletes the custom item at index. Out-of-range indexes
// are ignored.
func (s *Session) RemoveCustomItem(m Meal, index int) error {
	sel, err := s.input.Meal(m)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(sel.CustomItems) {
		return nil
	}
	sel.CustomItems = slices.Delete(slices.Clone(sel.CustomItems), index, index+1)
	return nil
}

// UploadLogo replaces the logo. On any error the previous logo is kept.
func (s *Session) UploadLogo(r io.Reader, size int64) error {
	logo, err := LoadLogo(r, size)
	if err != nil {
		return err
	}
	s.input.Logo = logo
	return nil
}

// SetLogo installs an already loaded logo; nil removes it.
func (s *Session) SetLogo(l *Logo) { s.input.Logo = l }

// RemoveLogo clears the uploaded logo.
func (s *Session) RemoveLogo() { s.input.Logo = nil }

// Submit validates the booking and returns its derived view. The booking
// ID is assigned here when missing. A failed Submit changes nothing.
func (s *Session) Submit() (BookingData, error) {
	if err := s.input.Validate(); err != nil {
		return BookingData{}, err
	}
	s.input.EnsureBookingID(s.cfg.now(), s.cfg.rnd)
	return s.Data(), nil
}

// Preview renders the current booking in preview mode.
func (s *Session) Preview(ctx context.Context) (string, error) {
	s.input.EnsureBookingID(s.cfg.now(), s.cfg.rnd)
	return s.exporter.Renderer().Render(ctx, s.Data(), ModePreview)
}

// Export generates the PDF of the current booking. Only one export runs at
// a time; the guard is released on success and on failure.
func (s *Session) Export(ctx context.Context) (*ExportResult, error) {
	if !s.exporting.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer s.exporting.Store(false)

	if err := s.input.Validate(); err != nil {
		return nil, err
	}
	s.input.EnsureBookingID(s.cfg.now(), s.cfg.rnd)
	return s.exporter.Export(ctx, s.Input())
}

// Exporting reports whether an export is running.
func (s *Session) Exporting() bool {
	return s.exporting.Load()
}

// Close releases the browser.
func (s *Session) Close() error {
	return s.exporter.Close()
}
