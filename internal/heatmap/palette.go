package heatmap

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Category is a discrete intensity band
type Category int

const (
	CategoryNone Category = iota
	CategoryVeryLow
	CategoryLow
	CategoryModerate
	CategoryElevated
	CategoryHigh
	CategoryCritical
)

var categoryNames = [...]string{
	CategoryNone:     "none",
	CategoryVeryLow:  "very_low",
	CategoryLow:      "low",
	CategoryModerate: "moderate",
	CategoryElevated: "elevated",
	CategoryHigh:     "high",
	CategoryCritical: "critical",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if name == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown intensity category %q", text)
}

// band upper bounds, ascending; anything not below the last one is critical
var thresholds = []struct {
	below    float64
	category Category
}{
	{0.10, CategoryNone},
	{0.25, CategoryVeryLow},
	{0.40, CategoryLow},
	{0.55, CategoryModerate},
	{0.70, CategoryElevated},
	{0.85, CategoryHigh},
}

var categoryHex = [...]string{
	CategoryNone:     "#1E3A8A",
	CategoryVeryLow:  "#3B82F6",
	CategoryLow:      "#10B981",
	CategoryModerate: "#84CC16",
	CategoryElevated: "#F59E0B",
	CategoryHigh:     "#EF4444",
	CategoryCritical: "#DC2626",
}

var categoryColors [len(categoryHex)]colorful.Color

// dashboard zone colors: <0.3, <0.5, <0.7, rest
var zoneBands = []float64{0.3, 0.5, 0.7}

var zoneHex = [...]string{"#3B82F6", "#10B981", "#F59E0B", "#DC2626"}

var zoneColors [len(zoneHex)]colorful.Color

func init() {
	for i, h := range categoryHex {
		categoryColors[i] = mustHex(h)
	}
	for i, h := range zoneHex {
		zoneColors[i] = mustHex(h)
	}
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(err)
	}
	return c
}

// IntensityCategory maps an intensity to its band, first matching threshold wins
func IntensityCategory(intensity float64) Category {
	for _, t := range thresholds {
		if intensity < t.below {
			return t.category
		}
	}
	return CategoryCritical
}

// PressureColor returns the display color for an interpolated intensity
func PressureColor(intensity float64) colorful.Color {
	return categoryColors[IntensityCategory(intensity)]
}

// Color returns the display color bound to the category
func (c Category) Color() colorful.Color {
	if c < 0 || int(c) >= len(categoryColors) {
		return categoryColors[CategoryCritical]
	}
	return categoryColors[c]
}

// ZoneColor is the coarser four-band color used for zone markers and progress bars
func ZoneColor(pressure float64) colorful.Color {
	for i, b := range zoneBands {
		if pressure < b {
			return zoneColors[i]
		}
	}
	return zoneColors[len(zoneColors)-1]
}
