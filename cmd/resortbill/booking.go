package main

import (
	"fmt"
	"path/filepath"
	"time"

	resortbill "github.com/alnah/go-resortbill"
	"github.com/alnah/go-resortbill/internal/config"
	"github.com/alnah/go-resortbill/internal/dateutil"
)

// loadBooking reads a booking file and converts it. logoOverride (the
// --logo flag) wins over the file's logo, which wins over defaultLogo
// from the config.
func loadBooking(path, logoOverride, defaultLogo string, now time.Time) (resortbill.BookingInput, error) {
	bf, err := config.LoadBookingFile(path)
	if err != nil {
		return resortbill.BookingInput{}, err
	}

	in, err := bookingFromFile(bf, now)
	if err != nil {
		return resortbill.BookingInput{}, fmt.Errorf("%s: %w", path, err)
	}

	logo := logoOverride
	if logo == "" && bf.Logo != "" {
		logo = bf.Logo
		if !filepath.IsAbs(logo) {
			logo = filepath.Join(filepath.Dir(path), logo)
		}
	}
	if logo == "" {
		logo = defaultLogo
	}
	if logo != "" {
		l, err := resortbill.LoadLogoFile(logo)
		if err != nil {
			return resortbill.BookingInput{}, fmt.Errorf("loading logo %s: %w", logo, err)
		}
		in.Logo = l
	}

	return in, nil
}

// bookingFromFile applies the file's values over the form defaults.
// Omitted counts and platform keep their defaults; "auto" as booking date
// means today.
func bookingFromFile(bf *config.BookingFile, now time.Time) (resortbill.BookingInput, error) {
	in := resortbill.NewBookingInput(now)

	if bf.BookingDate != "" {
		date, err := dateutil.ResolveDate(bf.BookingDate, now)
		if err != nil {
			return resortbill.BookingInput{}, fmt.Errorf("bookingDate: %w", err)
		}
		in.BookingDate = date
	}

	in.BookingID = bf.BookingID
	in.GuestName = bf.GuestName
	in.CheckInDate = bf.CheckInDate
	in.CheckOutDate = bf.CheckOutDate
	in.RoomType = resortbill.RoomType(bf.RoomType)
	if bf.NumRooms != nil {
		in.NumRooms = *bf.NumRooms
	}
	if bf.Adults != nil {
		in.Adults = *bf.Adults
	}
	if bf.Children != nil {
		in.Children = *bf.Children
	}
	in.RoomRent = bf.RoomRent
	in.AdvanceCollected = bf.AdvanceCollected
	if bf.Platform != "" {
		in.Platform = resortbill.Platform(bf.Platform)
	}
	in.PaymentMethod = resortbill.PaymentMethod(bf.PaymentMethod)
	in.AmtPerAdult = bf.AmtPerAdult
	in.AmtPerChild = bf.AmtPerChild
	in.AmtPerRoom = bf.AmtPerRoom

	in.Breakfast = mealFromFile(bf.Breakfast)
	in.Dinner = mealFromFile(bf.Dinner)
	in.Snacks = mealFromFile(bf.Snacks)

	return in, nil
}

func mealFromFile(m config.MealChoice) resortbill.MealSelection {
	return resortbill.MealSelection{
		Include:     m.Include,
		Items:       m.Items,
		CustomItems: m.CustomItems,
	}
}
