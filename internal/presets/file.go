package presets

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/suite-emprende/internal/pricing"
	"github.com/Simplici0/suite-emprende/internal/quote"
)

// File is the YAML document that overrides the built-in presets:
//
//	modes:
//	  reseller: {min_margin: 20, max_margin: 60, default_margin: 35}
//	quote:
//	  tax_rate: 19
type File struct {
	Modes map[string]pricing.Bounds `yaml:"modes"`
	Quote struct {
		TaxRate *float64 `yaml:"tax_rate"`
	} `yaml:"quote"`
}

// Settings is the validated, merged result of defaults and a File.
type Settings struct {
	Presets pricing.Presets
	TaxRate decimal.Decimal
	// FromFile is true when an override file was read.
	FromFile bool
	// Overrides lists what the file set explicitly.
	Overrides Overrides
}

// Overrides names the settings an override file sets. Only these replace
// stored values on seed.
type Overrides struct {
	Modes   map[pricing.Mode]bool
	TaxRate bool
}

// Mode reports whether the file sets the bounds of mode.
func (o Overrides) Mode(mode pricing.Mode) bool {
	return o.Modes[mode]
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Presets: pricing.DefaultPresets(),
		TaxRate: decimal.NewFromInt(quote.DefaultTaxRate),
	}
}

// LoadFile merges the overrides in path over Defaults. An empty path
// returns Defaults.
func LoadFile(path string) (Settings, error) {
	settings := Defaults()
	if path == "" {
		return settings, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read presets file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Settings{}, fmt.Errorf("parse presets file %s: %w", path, err)
	}

	settings.Overrides.Modes = make(map[pricing.Mode]bool, len(f.Modes))
	var errs []error
	for name, b := range f.Modes {
		mode, err := pricing.ParseMode(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := b.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("mode %s: %w", name, err))
			continue
		}
		settings.Presets[mode] = b
		settings.Overrides.Modes[mode] = true
	}
	if f.Quote.TaxRate != nil {
		if *f.Quote.TaxRate < 0 || *f.Quote.TaxRate > 100 {
			errs = append(errs, fmt.Errorf("quote tax_rate must be between 0 and 100, got %v", *f.Quote.TaxRate))
		} else {
			settings.TaxRate = decimal.NewFromFloat(*f.Quote.TaxRate)
			settings.Overrides.TaxRate = true
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Settings{}, fmt.Errorf("invalid presets file %s: %w", path, err)
	}

	settings.FromFile = true
	return settings, nil
}
