package resortbill

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-resortbill/internal/dateutil"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func bookingValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := dateutil.ParseISO(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// Validate checks the booking before it is shown or exported. The room type
// must be chosen, and when both stay dates are given check-out must come
// after check-in. Field-level problems (negative counts or amounts,
// unknown enum values, malformed dates) are reported as ErrInvalidBooking.
func (in BookingInput) Validate() error {
	if err := bookingValidator().Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrInvalidBooking, describeValidation(verrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	if in.RoomType == "" {
		return ErrRoomTypeRequired
	}
	if in.CheckInDate != "" && in.CheckOutDate != "" && Nights(in.CheckInDate, in.CheckOutDate) <= 0 {
		return fmt.Errorf("%w: %s to %s", ErrInvalidDateRange, in.CheckInDate, in.CheckOutDate)
	}
	return nil
}

func describeValidation(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldName(fe)+" "+validationMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

// fieldName turns "BookingInput.Breakfast.Items[0]" into
// "breakfast.items[0]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must not be negative"
	case "max":
		return "is too long (max " + fe.Param() + ")"
	case "oneof":
		return fmt.Sprintf("must be one of %s, got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "isodate":
		return fmt.Sprintf("must be a YYYY-MM-DD date, got %q", fe.Value())
	default:
		return "is invalid"
	}
}
