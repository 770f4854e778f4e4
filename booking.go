package resortbill

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// RoomType is the accommodation booked.
type RoomType string

const (
	RoomTypeRoom    RoomType = "Room"
	RoomTypeCottage RoomType = "Cottage"
)

// RoomTypes lists the accepted room types in display order.
var RoomTypes = []RoomType{RoomTypeRoom, RoomTypeCottage}

// Platform is the channel the booking came through.
type Platform string

const (
	PlatformBookingCom Platform = "Booking.com"
	PlatformDirect     Platform = "Direct"
)

// PaymentMethod selects the formula for the room rent.
type PaymentMethod string

const (
	PaymentUnset     PaymentMethod = ""
	PaymentPerPerson PaymentMethod = "perPerson"
	PaymentPerRoom   PaymentMethod = "perRoom"
	PaymentFull      PaymentMethod = "fullPayment"
)

// Meal names a meal section of the bill.
type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealDinner    Meal = "dinner"
	MealSnacks    Meal = "snacks"
)

// Defaults for a new booking.
const (
	DefaultNumRooms = 1
	DefaultAdults   = 2
	DefaultChildren = 0
)

// MealSelection holds the menu items picked for one meal and the free-text
// additions typed by the user.
type MealSelection struct {
	Include     bool
	Items       []string `validate:"dive,max=100"`
	CustomItems []string `validate:"dive,max=100"`
}

// Display returns predefined items followed by custom items. Duplicates
// across the two lists are kept.
func (m MealSelection) Display() []string {
	out := make([]string, 0, len(m.Items)+len(m.CustomItems))
	out = append(out, m.Items...)
	return append(out, m.CustomItems...)
}

func (m MealSelection) clone() MealSelection {
	return MealSelection{
		Include:     m.Include,
		Items:       append([]string(nil), m.Items...),
		CustomItems: append([]string(nil), m.CustomItems...),
	}
}

// Logo is an accepted logo image. Data holds the normalized PNG or JPEG
// bytes; DataURI embeds the same bytes for the HTML document.
type Logo struct {
	Data    []byte
	MIME    string
	Width   int
	Height  int
	DataURI string
}

// BookingInput is the raw, user-editable booking. Derived values are never
// stored here; see Derive.
type BookingInput struct {
	BookingID        string        `validate:"max=100"`
	GuestName        string        `validate:"max=100"`
	BookingDate      string        `validate:"omitempty,isodate"`
	CheckInDate      string        `validate:"omitempty,isodate"`
	CheckOutDate     string        `validate:"omitempty,isodate"`
	RoomType         RoomType      `validate:"omitempty,oneof=Room Cottage"`
	NumRooms         int           `validate:"gte=0"`
	Adults           int           `validate:"gte=0"`
	Children         int           `validate:"gte=0"`
	RoomRent         float64       `validate:"gte=0"`
	AdvanceCollected float64       `validate:"gte=0"`
	Platform         Platform      `validate:"omitempty,oneof=Booking.com Direct"`
	Logo             *Logo         `validate:"-"`
	Breakfast        MealSelection
	Dinner           MealSelection
	Snacks           MealSelection
	PaymentMethod    PaymentMethod `validate:"omitempty,oneof=perPerson perRoom fullPayment"`
	AmtPerAdult      float64       `validate:"gte=0"`
	AmtPerChild      float64       `validate:"gte=0"`
	AmtPerRoom       float64       `validate:"gte=0"`
}

// NewBookingInput returns a booking with the form defaults: one room, two
// adults, direct platform, booked today.
func NewBookingInput(now time.Time) BookingInput {
	return BookingInput{
		BookingDate: now.Format("2006-01-02"),
		NumRooms:    DefaultNumRooms,
		Adults:      DefaultAdults,
		Children:    DefaultChildren,
		Platform:    PlatformDirect,
	}
}

// Meal returns the selection for m.
func (in *BookingInput) Meal(m Meal) (*MealSelection, error) {
	switch m {
	case MealBreakfast:
		return &in.Breakfast, nil
	case MealDinner:
		return &in.Dinner, nil
	case MealSnacks:
		return &in.Snacks, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeal, m)
	}
}

// Clone returns a deep copy. The logo is shared; it is never mutated.
func (in BookingInput) Clone() BookingInput {
	out := in
	out.Breakfast = in.Breakfast.clone()
	out.Dinner = in.Dinner.clone()
	out.Snacks = in.Snacks.clone()
	return out
}

// NewBookingID formats DV-<last 6 digits of the unix millisecond
// timestamp>-<3-digit random>.
func NewBookingID(now time.Time, rnd *rand.Rand) string {
	ts := fmt.Sprintf("%06d", now.UnixMilli())
	ts = ts[len(ts)-6:]
	var n int
	if rnd != nil {
		n = rnd.IntN(1000)
	} else {
		n = rand.IntN(1000) // #nosec G404 -- not a secret
	}
	return fmt.Sprintf("DV-%s-%03d", ts, n)
}

// EnsureBookingID assigns an identifier when the booking has none. An
// existing identifier is never replaced.
func (in *BookingInput) EnsureBookingID(now time.Time, rnd *rand.Rand) string {
	if strings.TrimSpace(in.BookingID) == "" {
		in.BookingID = NewBookingID(now, rnd)
	}
	return in.BookingID
}
