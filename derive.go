package resortbill

import (
	"fmt"
	"math"

	"github.com/alnah/go-resortbill/internal/dateutil"
)

// BookingData is a BookingInput together with every derived field. It is
// produced by Derive at each use site and never stored.
type BookingData struct {
	BookingInput

	NumNights    int
	Reservation  string
	RoomRent     float64 // Rent from the payment method; shadows BookingInput.RoomRent
	Balance      float64
	IsPaidInFull bool
	CheckInDay   string
	CheckOutDay  string
}

// Nights counts whole days between two YYYY-MM-DD dates. It is 0 when
// either date is missing or invalid, or when check-out is not after
// check-in.
func Nights(checkIn, checkOut string) int {
	return dateutil.Nights(checkIn, checkOut)
}

// ReservationSummary formats "<N> Night(s), <R> Room(s)". It is empty
// unless nights is positive.
func ReservationSummary(nights, rooms int) string {
	if nights <= 0 {
		return ""
	}
	return fmt.Sprintf("%d %s, %d %s", nights, plural(nights, "Night"), rooms, plural(rooms, "Room"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// RoomRent applies the formula chosen by the payment method. Full payment
// and an unset method use the manually entered rent as-is.
func RoomRent(in BookingInput) float64 {
	switch in.PaymentMethod {
	case PaymentPerPerson:
		return float64(nonNegInt(in.Adults))*amount(in.AmtPerAdult) +
			float64(nonNegInt(in.Children))*amount(in.AmtPerChild)
	case PaymentPerRoom:
		return float64(nonNegInt(in.NumRooms)) * amount(in.AmtPerRoom)
	default:
		return amount(in.RoomRent)
	}
}

// Derive computes the derived fields of in. It never fails and has no side
// effects.
func Derive(in BookingInput) BookingData {
	nights := Nights(in.CheckInDate, in.CheckOutDate)
	rent := RoomRent(in)
	balance := rent - amount(in.AdvanceCollected)

	return BookingData{
		BookingInput: in,
		NumNights:    nights,
		Reservation:  ReservationSummary(nights, in.NumRooms),
		RoomRent:     rent,
		Balance:      balance,
		IsPaidInFull: balance == 0,
		CheckInDay:   dateutil.Weekday(in.CheckInDate),
		CheckOutDay:  dateutil.Weekday(in.CheckOutDate),
	}
}

// amount maps negative, NaN and infinite inputs to 0.
func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func nonNegInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
