package main

import (
	"encoding/json"
	"fmt"
	"io"

	resortbill "github.com/alnah/go-resortbill"
	"github.com/alnah/go-resortbill/internal/yamlutil"
)

// quote is the machine-readable summary of a booking's derived values.
type quote struct {
	BookingID    string  `json:"bookingId" yaml:"bookingId"`
	GuestName    string  `json:"guestName,omitempty" yaml:"guestName,omitempty"`
	CheckIn      string  `json:"checkIn,omitempty" yaml:"checkIn,omitempty"`
	CheckOut     string  `json:"checkOut,omitempty" yaml:"checkOut,omitempty"`
	Nights       int     `json:"nights" yaml:"nights"`
	Reservation  string  `json:"reservation" yaml:"reservation"`
	RoomRent     float64 `json:"roomRent" yaml:"roomRent"`
	Advance      float64 `json:"advanceCollected" yaml:"advanceCollected"`
	Balance      float64 `json:"balance" yaml:"balance"`
	IsPaidInFull bool    `json:"isPaidInFull" yaml:"isPaidInFull"`
}

func newQuote(d resortbill.BookingData) quote {
	return quote{
		BookingID:    d.BookingID,
		GuestName:    d.GuestName,
		CheckIn:      d.CheckInDate,
		CheckOut:     d.CheckOutDate,
		Nights:       d.NumNights,
		Reservation:  d.Reservation,
		RoomRent:     d.RoomRent,
		Advance:      d.AdvanceCollected,
		Balance:      d.Balance,
		IsPaidInFull: d.IsPaidInFull,
	}
}

// runQuote prints the derived amounts of one booking without a browser.
func runQuote(args []string, env *Environment) error {
	flags, positional, err := parseQuoteFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	path, err := singleBooking(positional)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}

	in, err := prepareBooking(path, "", cfg, env.Now())
	if err != nil {
		return err
	}

	q := newQuote(resortbill.Derive(in))
	resort := resortFromConfig(cfg)
	return printQuote(env.Stdout, q, flags.format, resort.Currency)
}

// printQuote writes q in the requested format.
func printQuote(w io.Writer, q quote, format, currency string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	case "yaml":
		out, err := yamlutil.Marshal(q)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	fmt.Fprintf(w, "Booking ID:   %s\n", q.BookingID)
	if q.GuestName != "" {
		fmt.Fprintf(w, "Guest:        %s\n", q.GuestName)
	}
	if q.Reservation != "" {
		fmt.Fprintf(w, "Reservation:  %s\n", q.Reservation)
	}
	fmt.Fprintf(w, "Room rent:    %s %.2f\n", currency, q.RoomRent)
	fmt.Fprintf(w, "Advance:      %s %.2f\n", currency, q.Advance)
	fmt.Fprintf(w, "Balance:      %s %.2f\n", currency, q.Balance)
	if q.IsPaidInFull {
		fmt.Fprintln(w, "Status:       paid in full")
	} else {
		fmt.Fprintln(w, "Status:       balance due")
	}
	return nil
}
