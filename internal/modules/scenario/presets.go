package scenario

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned when no preset matches a name
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named adjustment set that replaces the current one wholesale
type Preset struct {
	Name        string        `json:"name" yaml:"name"`
	Slug        string        `json:"slug" yaml:"slug"`
	Description string        `json:"description" yaml:"description"`
	Adjustments AdjustmentSet `json:"adjustments" yaml:"adjustments"`
}

// uniformAdjustments spreads one percentage per metric across all channels
func uniformAdjustments(revenue, orders, aov, marketingSpend, shippingCost, cogsPercent float64) AdjustmentSet {
	return AdjustmentSet{
		Revenue:        Uniform(revenue),
		Orders:         Uniform(orders),
		AOV:            Uniform(aov),
		MarketingSpend: Uniform(marketingSpend),
		ShippingCost:   shippingCost,
		COGSPercent:    cogsPercent,
	}
}

var presets = []Preset{
	{
		Name:        "Growth Mode",
		Slug:        "growth-mode",
		Description: "Aggressive revenue growth with increased marketing",
		Adjustments: uniformAdjustments(20, 25, 0, 30, 15, 0),
	},
	{
		Name:        "Efficiency Focus",
		Slug:        "efficiency-focus",
		Description: "Optimize costs while maintaining revenue",
		Adjustments: uniformAdjustments(0, 0, 0, -20, -15, -10),
	},
	{
		Name:        "Scale Up",
		Slug:        "scale-up",
		Description: "Major expansion with proportional cost increases",
		Adjustments: uniformAdjustments(50, 50, 0, 40, 25, 5),
	},
	{
		Name:        "Conservative",
		Slug:        "conservative",
		Description: "Cautious approach with minimal changes",
		Adjustments: uniformAdjustments(5, 5, 0, 0, 0, 0),
	},
}

// Presets returns the built-in presets in display order
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByName finds a preset by display name or slug, ignoring case
func PresetByName(name string) (Preset, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if strings.ToLower(p.Name) == needle || p.Slug == needle {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
