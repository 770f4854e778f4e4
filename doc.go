// Package resortbill builds the three-page booking bill of a small resort
// and exports it as an A4 PDF using headless Chrome.
//
// # Quick Start
//
// Drive a booking through a Session and export it:
//
//	s, err := resortbill.NewSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.SetGuestName("Asha Rao")
//	s.SetStayDates("2024-06-10", "2024-06-13")
//	s.SetRoomType(resortbill.RoomTypeCottage)
//	s.SetPaymentMethod(resortbill.PaymentPerRoom)
//	s.SetRates(0, 0, 3500)
//
//	if _, err := s.Submit(); err != nil {
//	    log.Fatal(err)
//	}
//	res, err := s.Export(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(res.FileName, res.PDF, 0644)
//
// # Derived Fields
//
// Nights, the reservation summary, the room rent and the balance are never
// stored. Derive recomputes them from a BookingInput every time they are
// needed, so they cannot drift from the dates and rates they come from.
//
// # Export Pipeline
//
//  1. Render the bill in export mode (fixed 210mm pages) to a temp file
//  2. Load it in headless Chrome (go-rod) and wait a short settle delay
//  3. Screenshot every page as JPEG, one after the other
//  4. Place each image on an A4 page (gofpdf)
//  5. Redraw the original logo over its blurred raster copy
//
// Step 5 is best effort: a failure is logged and the page keeps the
// captured logo.
//
// # Configuration
//
//	s, err := resortbill.NewSession(
//	    resortbill.WithResort(profile),
//	    resortbill.WithSettleDelay(time.Second),
//	    resortbill.WithLogger(slog.Default()),
//	)
package resortbill
