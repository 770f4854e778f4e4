package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/alnah/go-resortbill/internal/yamlutil"
)

var (
	ErrBookingNotFound = errors.New("booking file not found")
	ErrBookingParse    = errors.New("failed to parse booking file")
)

// BookingFile is the on-disk form of one booking. Counts are pointers so
// an omitted key keeps its default (1 room, 2 adults, 0 children).
type BookingFile struct {
	BookingID        string     `yaml:"bookingId"`
	GuestName        string     `yaml:"guestName"`
	BookingDate      string     `yaml:"bookingDate"` // YYYY-MM-DD, "auto" or empty
	CheckInDate      string     `yaml:"checkInDate"`
	CheckOutDate     string     `yaml:"checkOutDate"`
	RoomType         string     `yaml:"roomType"`
	NumRooms         *int       `yaml:"numRooms"`
	Adults           *int       `yaml:"adults"`
	Children         *int       `yaml:"children"`
	RoomRent         float64    `yaml:"roomRent"`
	AdvanceCollected float64    `yaml:"advanceCollected"`
	Platform         string     `yaml:"platform"`
	Logo             string     `yaml:"logo"` // Path, relative to the booking file
	Breakfast        MealChoice `yaml:"breakfast"`
	Dinner           MealChoice `yaml:"dinner"`
	Snacks           MealChoice `yaml:"snacks"`
	PaymentMethod    string     `yaml:"paymentMethod"`
	AmtPerAdult      float64    `yaml:"amtPerAdult"`
	AmtPerChild      float64    `yaml:"amtPerChild"`
	AmtPerRoom       float64    `yaml:"amtPerRoom"`
}

// MealChoice is one meal of a booking file.
type MealChoice struct {
	Include     bool     `yaml:"include"`
	Items       []string `yaml:"items"`
	CustomItems []string `yaml:"customItems"`
}

// Validate checks the free-text fields of the booking file. Business rules
// (date order, room type, amounts) are checked when the booking is submitted.
func (b *BookingFile) Validate() error {
	if err := validateFieldLength("guestName", b.GuestName, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("bookingId", b.BookingID, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("logo", b.Logo, MaxURLLength); err != nil {
		return err
	}
	meals := []struct {
		name   string
		choice MealChoice
	}{
		{"breakfast", b.Breakfast},
		{"dinner", b.Dinner},
		{"snacks", b.Snacks},
	}
	for _, m := range meals {
		if err := validateList(m.name+".items", m.choice.Items, MaxItemLength); err != nil {
			return err
		}
		if err := validateList(m.name+".customItems", m.choice.CustomItems, MaxItemLength); err != nil {
			return err
		}
	}
	return nil
}

// LoadBookingFile strictly decodes and validates the booking at path.
func LoadBookingFile(path string) (*BookingFile, error) {
	var b BookingFile
	if err := yamlutil.DecodeFileStrict(path, &b); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrBookingParse, path, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
