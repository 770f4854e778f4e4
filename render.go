package resortbill

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/alnah/go-resortbill/internal/assets"
	"github.com/alnah/go-resortbill/internal/dateutil"
	"github.com/alnah/go-resortbill/internal/markup"
)

// PageCount is the number of pages of every bill.
const PageCount = 3

// Mode selects the physical layout of the document. Content is the same in
// both modes.
type Mode int

const (
	// ModePreview uses a fluid width for on-screen viewing.
	ModePreview Mode = iota
	// ModeExport uses fixed A4 pages (210mm wide, 297mm tall, 15mm padding).
	ModeExport
)

func (m Mode) String() string {
	if m == ModeExport {
		return "export"
	}
	return "preview"
}

// Renderer turns derived booking data into the three-page HTML bill.
// It is safe for concurrent use.
type Renderer struct {
	tmpl         *template.Template
	css          template.CSS
	resort       Resort
	rules        []ruleView
	cancellation template.HTML
}

type billView struct {
	Mode    string
	CSS     template.CSS
	Resort  resortView
	Booking BookingData
	LogoURI template.URL

	CheckIn  string
	CheckOut string
	RoomRent string
	Advance  string
	Balance  string

	Snacks    mealView
	Breakfast mealView
	Dinner    mealView
	Lunch     LunchInfo

	PaidActivity   paidActivityView
	FreeActivities []string
	Rules          []ruleView
	Cancellation   template.HTML
}

type resortView struct {
	Name            string
	ShortNameTop    string
	ShortNameBottom string
	Address         string
	MapsURL         string
	Phones          string
	Email           string
	CheckInTime     string
	CheckOutTime    string
	Tagline         string
}

type mealView struct {
	Show  bool
	Title string
	Time  string
	Items []string
	Note  string
}

type paidActivityView struct {
	Name  string
	Note  string
	Price string
	Unit  string
}

type ruleView struct {
	Number      int
	Title       string
	Description template.HTML
}

// NewRenderer loads and parses the bill template. Options other than
// WithResort and WithAssetPath are ignored.
func NewRenderer(opts ...Option) (*Renderer, error) {
	return newRenderer(newSettings(opts))
}

func newRenderer(cfg settings) (*Renderer, error) {
	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}

	src, err := loader.LoadTemplate(assets.BillTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading bill template: %w", err)
	}
	css, err := loader.LoadStyle(assets.BillStyle)
	if err != nil {
		return nil, fmt.Errorf("loading bill style: %w", err)
	}

	tmpl, err := template.New(assets.BillTemplate).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", ErrRender, err)
	}

	md := markup.New()
	rules := make([]ruleView, 0, len(cfg.resort.Rules))
	for i, rule := range cfg.resort.Rules {
		desc, err := md.Inline(rule.Description)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrRender, i+1, err)
		}
		rules = append(rules, ruleView{Number: i + 1, Title: rule.Title, Description: desc})
	}
	cancellation, err := md.Inline(cfg.resort.Cancellation)
	if err != nil {
		return nil, fmt.Errorf("%w: cancellation policy: %v", ErrRender, err)
	}

	return &Renderer{
		tmpl:         tmpl,
		css:          template.CSS(css), // #nosec G203 -- trusted asset
		resort:       cfg.resort,
		rules:        rules,
		cancellation: cancellation,
	}, nil
}

// PageCount returns the number of pages every rendered bill has.
func (r *Renderer) PageCount() int {
	return PageCount
}

// Render executes the bill template for data in the given mode.
func (r *Renderer) Render(ctx context.Context, data BookingData, mode Mode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, r.view(data, mode)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}

func (r *Renderer) view(data BookingData, mode Mode) billView {
	res := r.resort
	top, bottom := res.placeholderLines()

	v := billView{
		Mode: mode.String(),
		CSS:  r.css,
		Resort: resortView{
			Name:            res.Name,
			ShortNameTop:    top,
			ShortNameBottom: bottom,
			Address:         res.Address,
			MapsURL:         res.MapsURL,
			Phones:          strings.Join(res.Phones, " | "),
			Email:           res.Email,
			CheckInTime:     res.CheckInTime,
			CheckOutTime:    res.CheckOutTime,
			Tagline:         res.Tagline,
		},
		Booking:  data,
		CheckIn:  r.displayDate(data.CheckInDate),
		CheckOut: r.displayDate(data.CheckOutDate),
		RoomRent: formatMoney(res.Currency, " ", data.RoomRent),
		Advance:  formatMoney(res.Currency, " ", amount(data.AdvanceCollected)),
		Balance:  formatMoney(res.Currency, " ", data.Balance),

		Snacks:    meal(res.Snacks, data.Snacks),
		Breakfast: meal(res.Breakfast, data.Breakfast),
		Dinner:    meal(res.Dinner, data.Dinner),
		Lunch:     res.Lunch,

		PaidActivity: paidActivityView{
			Name:  res.PaidActivity.Name,
			Note:  res.PaidActivity.Note,
			Price: formatMoney(res.Currency, "", res.PaidActivity.Price),
			Unit:  res.PaidActivity.Unit,
		},
		FreeActivities: res.FreeActivities,
		Rules:          r.rules,
		Cancellation:   r.cancellation,
	}
	if data.Logo != nil && data.Logo.DataURI != "" {
		v.LogoURI = template.URL(data.Logo.DataURI) // #nosec G203 -- produced by LoadLogo
	}
	return v
}

func (r *Renderer) displayDate(s string) string {
	if r.resort.DateFormat == "" || s == "" {
		return s
	}
	out, err := dateutil.FormatISO(s, r.resort.DateFormat)
	if err != nil {
		return s
	}
	return out
}

func meal(info MealInfo, sel MealSelection) mealView {
	return mealView{
		Show:  sel.Include,
		Title: info.Title,
		Time:  info.Time,
		Items: sel.Display(),
		Note:  info.Note,
	}
}

// formatMoney prints v with at most two decimals and no trailing zeros.
func formatMoney(currency, sep string, v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return currency + sep + strconv.FormatFloat(v, 'f', -1, 64)
}
