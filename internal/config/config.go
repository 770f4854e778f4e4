package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-resortbill/internal/dateutil"
	"github.com/alnah/go-resortbill/internal/fileutil"
	"github.com/alnah/go-resortbill/internal/yamlutil"
)

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldInvalid    = errors.New("invalid field value")
)

// Field length limits.
const (
	MaxNameLength     = 100
	MaxAddressLength  = 200
	MaxEmailLength    = 254  // RFC 5321
	MaxURLLength      = 2048 // Browser limit
	MaxPhoneLength    = 30
	MaxTimeLength     = 50 // "Until 11:00 AM"
	MaxTextLength     = 500
	MaxItemLength     = 100 // One menu item or activity
	MaxListLength     = 100 // Items per list
	MaxPrefixLength   = 50
	MaxCurrencyLength = 5
	MaxDurationLength = 20
)

// Config holds the resort profile and export settings. Empty fields keep
// the built-in defaults.
type Config struct {
	Resort     ResortConfig     `yaml:"resort"`
	Menus      MenusConfig      `yaml:"menus"`
	Activities ActivitiesConfig `yaml:"activities"`
	Terms      TermsConfig      `yaml:"terms"`
	Export     ExportConfig     `yaml:"export"`
	Output     OutputConfig     `yaml:"output"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// ResortConfig describes the resort identity printed on page 1.
type ResortConfig struct {
	Name         string   `yaml:"name"`
	Address      string   `yaml:"address"`
	MapsURL      string   `yaml:"mapsUrl"`
	Phones       []string `yaml:"phones"`
	Email        string   `yaml:"email"`
	CheckInTime  string   `yaml:"checkInTime"`
	CheckOutTime string   `yaml:"checkOutTime"`
	Tagline      string   `yaml:"tagline"`
	FilePrefix   string   `yaml:"filePrefix"` // "DreamyVacations" -> DreamyVacations_<id>.pdf
	Currency     string   `yaml:"currency"`   // Symbol, default "₹"
	DateFormat   string   `yaml:"dateFormat"` // "DD/MM/YYYY" or a preset; empty keeps YYYY-MM-DD
}

// MealConfig is one meal of the resort menu.
type MealConfig struct {
	Time  string   `yaml:"time"`
	Items []string `yaml:"items"`
	Note  string   `yaml:"note"`
}

type LunchConfig struct {
	Title string `yaml:"title"`
	Note  string `yaml:"note"`
}

type MenusConfig struct {
	Breakfast MealConfig  `yaml:"breakfast"`
	Dinner    MealConfig  `yaml:"dinner"`
	Snacks    MealConfig  `yaml:"snacks"`
	Lunch     LunchConfig `yaml:"lunch"`
}

type PaidActivityConfig struct {
	Name  string  `yaml:"name"`
	Note  string  `yaml:"note"`
	Price float64 `yaml:"price"`
	Unit  string  `yaml:"unit"`
}

type ActivitiesConfig struct {
	Free []string           `yaml:"free"`
	Paid PaidActivityConfig `yaml:"paid"`
}

// RuleConfig is one numbered resort rule. Description is Markdown.
type RuleConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type TermsConfig struct {
	Rules        []RuleConfig `yaml:"rules"`
	Cancellation string       `yaml:"cancellation"` // Markdown
}

// ExportConfig tunes the PDF export. Durations use Go syntax ("600ms", "1m").
type ExportConfig struct {
	SettleDelay string  `yaml:"settleDelay"`
	Timeout     string  `yaml:"timeout"`
	Scale       float64 `yaml:"scale"`       // Device scale factor, 1 to 4
	JPEGQuality int     `yaml:"jpegQuality"` // 1 to 100
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = current directory
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Logo     string `yaml:"logo"`     // Default logo when a booking has none
}

// SettleDelayDuration parses SettleDelay. Zero means unset.
func (e ExportConfig) SettleDelayDuration() (time.Duration, error) {
	return parseDuration("export.settleDelay", e.SettleDelay)
}

// TimeoutDuration parses Timeout. Zero means unset.
func (e ExportConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("export.timeout", e.Timeout)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrFieldInvalid, field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s: must not be negative", ErrFieldInvalid, field)
	}
	return d, nil
}

// Validate checks field lengths and ranges. LoadConfig calls it; library
// users building a Config by hand can call it too.
func (c *Config) Validate() error {
	r := c.Resort
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"resort.name", r.Name, MaxNameLength},
		{"resort.address", r.Address, MaxAddressLength},
		{"resort.mapsUrl", r.MapsURL, MaxURLLength},
		{"resort.email", r.Email, MaxEmailLength},
		{"resort.checkInTime", r.CheckInTime, MaxTimeLength},
		{"resort.checkOutTime", r.CheckOutTime, MaxTimeLength},
		{"resort.tagline", r.Tagline, MaxTextLength},
		{"resort.filePrefix", r.FilePrefix, MaxPrefixLength},
		{"resort.currency", r.Currency, MaxCurrencyLength},
		{"resort.dateFormat", r.DateFormat, dateutil.MaxDateFormatLength},
		{"menus.breakfast.time", c.Menus.Breakfast.Time, MaxTimeLength},
		{"menus.breakfast.note", c.Menus.Breakfast.Note, MaxTextLength},
		{"menus.dinner.time", c.Menus.Dinner.Time, MaxTimeLength},
		{"menus.dinner.note", c.Menus.Dinner.Note, MaxTextLength},
		{"menus.snacks.time", c.Menus.Snacks.Time, MaxTimeLength},
		{"menus.snacks.note", c.Menus.Snacks.Note, MaxTextLength},
		{"menus.lunch.title", c.Menus.Lunch.Title, MaxNameLength},
		{"menus.lunch.note", c.Menus.Lunch.Note, MaxTextLength},
		{"activities.paid.name", c.Activities.Paid.Name, MaxItemLength},
		{"activities.paid.note", c.Activities.Paid.Note, MaxTextLength},
		{"activities.paid.unit", c.Activities.Paid.Unit, MaxItemLength},
		{"terms.cancellation", c.Terms.Cancellation, MaxTextLength},
		{"export.settleDelay", c.Export.SettleDelay, MaxDurationLength},
		{"export.timeout", c.Export.Timeout, MaxDurationLength},
		{"assets.logo", c.Assets.Logo, MaxURLLength},
	}
	for _, chk := range checks {
		if err := validateFieldLength(chk.field, chk.value, chk.max); err != nil {
			return err
		}
	}

	lists := []struct {
		field string
		items []string
		max   int
	}{
		{"resort.phones", r.Phones, MaxPhoneLength},
		{"menus.breakfast.items", c.Menus.Breakfast.Items, MaxItemLength},
		{"menus.dinner.items", c.Menus.Dinner.Items, MaxItemLength},
		{"menus.snacks.items", c.Menus.Snacks.Items, MaxItemLength},
		{"activities.free", c.Activities.Free, MaxItemLength},
	}
	for _, l := range lists {
		if err := validateList(l.field, l.items, l.max); err != nil {
			return err
		}
	}

	if len(c.Terms.Rules) > MaxListLength {
		return fmt.Errorf("%w: terms.rules (%d entries, max %d)", ErrFieldTooLong, len(c.Terms.Rules), MaxListLength)
	}
	for i, rule := range c.Terms.Rules {
		if err := validateFieldLength(fmt.Sprintf("terms.rules[%d].title", i), rule.Title, MaxNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("terms.rules[%d].description", i), rule.Description, MaxTextLength); err != nil {
			return err
		}
	}

	if c.Activities.Paid.Price < 0 {
		return fmt.Errorf("%w: activities.paid.price must not be negative", ErrFieldInvalid)
	}
	if c.Export.Scale != 0 && (c.Export.Scale < 1 || c.Export.Scale > 4) {
		return fmt.Errorf("%w: export.scale must be between 1 and 4, got %.2f", ErrFieldInvalid, c.Export.Scale)
	}
	if c.Export.JPEGQuality != 0 && (c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100) {
		return fmt.Errorf("%w: export.jpegQuality must be between 1 and 100, got %d", ErrFieldInvalid, c.Export.JPEGQuality)
	}
	if _, err := c.Export.SettleDelayDuration(); err != nil {
		return err
	}
	if _, err := c.Export.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := dateutil.FormatISO("2024-01-31", r.DateFormat); err != nil {
		return fmt.Errorf("%w: resort.dateFormat: %v", ErrFieldInvalid, err)
	}
	if r.FilePrefix != "" && fileutil.SafeFilePart(r.FilePrefix) != r.FilePrefix {
		return fmt.Errorf("%w: resort.filePrefix %q contains characters not allowed in file names", ErrFieldInvalid, r.FilePrefix)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateList(fieldName string, items []string, maxItemLength int) error {
	if len(items) > MaxListLength {
		return fmt.Errorf("%w: %s (%d entries, max %d)", ErrFieldTooLong, fieldName, len(items), MaxListLength)
	}
	for i, item := range items {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", fieldName, i), item, maxItemLength); err != nil {
			return err
		}
	}
	return nil
}

// DefaultConfig returns an empty configuration: every value falls back to
// the built-in resort profile and export defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched in the current directory and then the user config
// directory. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath tries name.yaml and name.yml in the current directory,
// then in the user config directory under resortbill/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "resortbill", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
