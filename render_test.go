package resortbill

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func renderBill(t *testing.T, in BookingInput, mode Mode, opts ...Option) string {
	t.Helper()
	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	html, err := r.Render(context.Background(), Derive(in), mode)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return html
}

func TestRenderer_Render_Pages(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModePreview, ModeExport} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()

			html := renderBill(t, validInput(), mode)
			if got := strings.Count(html, `class="page `); got != PageCount {
				t.Errorf("page sections = %d, want %d", got, PageCount)
			}
			if !strings.Contains(html, `mode-`+mode.String()) {
				t.Errorf("missing mode-%s class", mode)
			}
			if got := strings.Count(html, `data-pdf-logo="true"`); got != PageCount {
				t.Errorf("logo slots = %d, want one per page", got)
			}
		})
	}
}

func TestRenderer_Render_PaymentBanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		advance float64
		want    string
		notWant string
	}{
		{"paid in full", 5000, "FULL PAYMENT DONE", "Balance to Pay"},
		{"balance due", 1500.5, "₹ 3499.5", "FULL PAYMENT DONE"},
		{"overpaid shows negative balance", 6000, "₹ -1000", "FULL PAYMENT DONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput()
			in.AdvanceCollected = tt.advance
			html := renderBill(t, in, ModePreview)

			if !strings.Contains(html, tt.want) {
				t.Errorf("missing %q", tt.want)
			}
			if strings.Contains(html, tt.notWant) {
				t.Errorf("unexpected %q", tt.notWant)
			}
		})
	}
}

func TestRenderer_Render_Meals(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Breakfast = MealSelection{Include: true, Items: []string{"Idli"}, CustomItems: []string{"Masala Dosa"}}
	in.Snacks = MealSelection{Include: true}
	in.Dinner = MealSelection{Include: false, Items: []string{"Chapati"}}

	html := renderBill(t, in, ModeExport)

	for _, want := range []string{"meal-breakfast", "Idli", "Masala Dosa", "meal-snacks", "No items selected", "Lunch (On Demand)"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
	for _, notWant := range []string{"meal-dinner", "Chapati"} {
		if strings.Contains(html, notWant) {
			t.Errorf("hidden dinner leaked %q", notWant)
		}
	}
}

func TestRenderer_Render_Content(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.BookingID = "DV-111111-222"
	html := renderBill(t, in, ModePreview)

	for _, want := range []string{
		"DV-111111-222 - PAGE 2",
		"DV-111111-222 - PAGE 3",
		"3 Nights, 2 Rooms",
		"Monday",
		"Thursday",
		"₹ 5000",
		"₹1500",
		"Outdoor BBQ",
		"Swimming Pool",
		"Noise Regulation",
		"Thank you for choosing",
		"99029 60484 | ",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderer_Render_Escaping(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.GuestName = `<script>alert("x")</script>`
	html := renderBill(t, in, ModePreview)

	if strings.Contains(html, "<script>") {
		t.Error("guest name rendered unescaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped guest name missing")
	}
}

func TestRenderer_Render_Logo(t *testing.T) {
	t.Parallel()

	t.Run("placeholder without logo", func(t *testing.T) {
		t.Parallel()

		html := renderBill(t, validInput(), ModePreview)
		if !strings.Contains(html, "<span>Dreamy</span><span>Vacations</span>") {
			t.Error("placeholder name lines missing")
		}
		if strings.Contains(html, "<img") {
			t.Error("unexpected <img> without logo")
		}
	})

	t.Run("data URI with logo", func(t *testing.T) {
		t.Parallel()

		in := validInput()
		in.Logo = testLogo(t)
		html := renderBill(t, in, ModePreview)
		if got := strings.Count(html, `src="data:image/png;base64,`); got != PageCount {
			t.Errorf("logo images = %d, want %d", got, PageCount)
		}
	})
}

func TestRenderer_Render_ResortProfile(t *testing.T) {
	t.Parallel()

	res := DefaultResort()
	res.Name = "Hill View Stay"
	res.Currency = "$"
	res.DateFormat = "DD/MM/YYYY"
	res.Rules = []Rule{{Title: "Quiet", Description: "No music **after 10 PM**."}}
	res.Cancellation = "Full charge within *5 days*."

	html := renderBill(t, validInput(), ModePreview, WithResort(res))

	for _, want := range []string{
		"Hill View Stay",
		"$ 5000",
		"10/06/2024",
		"<strong>after 10 PM</strong>",
		"<em>5 days</em>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(html, "Noise Regulation") {
		t.Error("default rules rendered with a custom profile")
	}
}

func TestRenderer_Render_CanceledContext(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, Derive(validInput()), ModePreview); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func TestNewRenderer_AssetPath(t *testing.T) {
	t.Parallel()

	t.Run("custom style with embedded template", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "bill.css"), []byte(".custom-marker{color:red}"), 0o600); err != nil {
			t.Fatal(err)
		}

		html := renderBill(t, validInput(), ModePreview, WithAssetPath(dir))
		if !strings.Contains(html, ".custom-marker") {
			t.Error("custom stylesheet not used")
		}
		if strings.Count(html, `class="page `) != PageCount {
			t.Error("embedded template not used as fallback")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewRenderer(WithAssetPath(filepath.Join(t.TempDir(), "nope")))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewRenderer() error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sep  string
		v    float64
		want string
	}{
		{" ", 5000, "₹ 5000"},
		{" ", 2500.5, "₹ 2500.5"},
		{" ", 10.256, "₹ 10.26"},
		{" ", 0, "₹ 0"},
		{" ", -0.001, "₹ 0"},
		{"", 1500, "₹1500"},
		{" ", 1234567.5, "₹ 1234567.5"},
	}

	for _, tt := range tests {
		if got := formatMoney("₹", tt.sep, tt.v); got != tt.want {
			t.Errorf("formatMoney(%q, %v) = %q, want %q", tt.sep, tt.v, got, tt.want)
		}
	}
}
