package resortbill

import (
	"strings"

	"github.com/alnah/go-resortbill/internal/fileutil"
)

// MealInfo describes one meal section of the resort: its heading, serving
// time and the predefined menu offered in the booking form.
type MealInfo struct {
	Title string
	Time  string
	Menu  []string
	Note  string
}

// LunchInfo is the always-shown, on-demand lunch block.
type LunchInfo struct {
	Title string
	Note  string
}

type PaidActivity struct {
	Name  string
	Note  string
	Price float64
	Unit  string
}

// Rule is a numbered resort rule. Description is Markdown.
type Rule struct {
	Title       string
	Description string
}

// Resort is the static, non-booking content of the bill.
type Resort struct {
	Name         string
	Address      string
	MapsURL      string
	Phones       []string
	Email        string
	CheckInTime  string
	CheckOutTime string
	Tagline      string
	FilePrefix   string
	Currency     string
	DateFormat   string // Display format for stay dates; empty keeps YYYY-MM-DD

	Snacks    MealInfo
	Breakfast MealInfo
	Dinner    MealInfo
	Lunch     LunchInfo

	FreeActivities []string
	PaidActivity   PaidActivity

	Rules        []Rule
	Cancellation string // Markdown
}

// DefaultResort returns the Dreamy Vacations profile.
func DefaultResort() Resort {
	return Resort{
		Name:         "Dreamy Vacations",
		Address:      "Kushalnagar Coorg",
		MapsURL:      "https://maps.app.goo.gl/Ce1XYeoE9D8vLveV7",
		Phones:       []string{"+91 99029 60484", "+91 7736316454"},
		Email:        "dreamyvacation6@gmail.com",
		CheckInTime:  "12:00 PM",
		CheckOutTime: "Until 11:00 AM",
		Tagline:      "Dreamy Vacations Resort is situated amidst an intense coconut estate and hence spotting areas near Harangi reservoir.",
		FilePrefix:   "DreamyVacations",
		Currency:     "₹",

		Snacks: MealInfo{
			Title: "Complimentary Evening Snacks",
			Time:  "5 PM – 6 PM",
			Menu:  []string{"Onion Pakoda", "French Fries"},
			Note:  "* Extra snacks available at extra cost. Please inform before check-in or before 2 PM.",
		},
		Breakfast: MealInfo{
			Title: "Complimentary Breakfast",
			Time:  "8:30 AM – 9:30 AM",
			Menu: []string{
				"Poori", "Bhaji", "Veg Pulao", "Bread Jam", "Boiled Egg", "Cut Fruits",
				"Coffee/Tea", "Idli", "Sambar", "Nool Putt", "Kadala Curry",
			},
		},
		Dinner: MealInfo{
			Title: "Complimentary Dinner",
			Time:  "8:00 PM – 9:00 PM",
			Menu: []string{
				"Chapati", "Ghee Rice", "Chicken Curry", "Chicken Pepper Dry", "Mix Veg Curry",
				"Gobi Manchurian", "Green Salad", "Ice Cream", "Kerala Parota", "Jeera Rice",
				"Chicken Curry Coorg Style", "Chicken Hariyali Kabab", "Paneer Butter Masala",
				"Mushroom Pepper Dry", "Soft Drinks", "Chicken Butter Masala",
			},
		},
		Lunch: LunchInfo{
			Title: "Lunch (On Demand)",
			Note:  "1:00 PM – 2:30 PM. Inform by previous day 7:00 PM.",
		},

		FreeActivities: []string{
			"Swimming Pool", "Bonfire with Music", "Rain Dance with Music", "Carroms",
			"Football", "Chess", "Table Tennis", "Volleyball", "Shuttle", "Cricket",
			"Outdoor kids play area", "High speed internet", "Morning Walk",
		},
		PaidActivity: PaidActivity{
			Name:  "Outdoor BBQ",
			Note:  "Weather dependent. Requires prior notice.",
			Price: 1500,
			Unit:  "per 1 Kg Chicken",
		},

		Rules: []Rule{
			{
				Title:       "Noise Regulation",
				Description: "All lights and music must be turned off by 10:00 PM. Silence is mandatory after this time as per local regulations.",
			},
			{
				Title:       "Eco-Friendly Environment",
				Description: "The resort is located within a coconut estate. Guests are requested to respect the local flora and fauna.",
			},
			{
				Title:       "Property & Linen Damage",
				Description: "Any damage to resort property, including furniture, fixtures, linens, or bedding, will be charged to the guest.",
			},
			{
				Title:       "Vomiting & Excessive Cleaning",
				Description: "Vomiting or any incident requiring excessive cleaning will attract cleaning or replacement charges if damage occurs.",
			},
		},
		Cancellation: "Any cancellation received within 5 days prior to arrival date will incur the full period charge. Failure to arrive will be treated as No-Show and no refund will be given.",
	}
}

// MealInfo returns the section for m.
func (r Resort) MealInfo(m Meal) (MealInfo, error) {
	switch m {
	case MealBreakfast:
		return r.Breakfast, nil
	case MealDinner:
		return r.Dinner, nil
	case MealSnacks:
		return r.Snacks, nil
	default:
		return MealInfo{}, ErrUnknownMeal
	}
}

// FileName returns <prefix>_<bookingID>.pdf with both parts made safe for
// use as a file name.
func (r Resort) FileName(bookingID string) string {
	prefix := r.FilePrefix
	if prefix == "" {
		prefix = strings.ReplaceAll(r.Name, " ", "")
	}
	return fileutil.SafeFilePart(prefix) + "_" + fileutil.SafeFilePart(bookingID) + ".pdf"
}

// placeholderLines splits the resort name into the two lines shown in an
// empty logo slot.
func (r Resort) placeholderLines() (string, string) {
	first, rest, _ := strings.Cut(strings.TrimSpace(r.Name), " ")
	return first, strings.TrimSpace(rest)
}
