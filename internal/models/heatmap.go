package models

import "github.com/jengzang/pressuremap-backend-go/internal/heatmap"

// HeatmapFilter holds query parameters for a rendered heatmap
type HeatmapFilter struct {
	Width  float64 `form:"width"`
	Height float64 `form:"height"`
	Cols   int     `form:"cols"`
	Rows   int     `form:"rows"`
}

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Grid    heatmap.Grid    `json:"grid"`
	Zones   []PressurePoint `json:"zones"`
	Palette []PaletteEntry  `json:"palette"`
}

// PaletteEntry binds a category to its display color
type PaletteEntry struct {
	Category heatmap.Category `json:"category"`
	Color    string           `json:"color"`
}

// IntensityPosition is a query location in surface units
type IntensityPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IntensityRequest is the body of POST /heatmap/intensity
type IntensityRequest struct {
	Position IntensityPosition         `json:"position"`
	Sources  []heatmap.SourcePoint     `json:"sources"`
	Surface  heatmap.SurfaceDimensions `json:"surface"`
}

// IntensityResponse carries one estimated intensity
type IntensityResponse struct {
	Intensity float64          `json:"intensity"` // Normalized 0-1
	Category  heatmap.Category `json:"category"`
	Color     string           `json:"color"`
}
