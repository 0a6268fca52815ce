package service

import (
	"fmt"
	"io"

	"github.com/golang/geo/r2"
	"github.com/jengzang/pressuremap-backend-go/internal/heatmap"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
)

const (
	defaultGridCols = 40
	defaultGridRows = 80
	maxGridCells    = 256 * 256
	maxImageSide    = 2048
)

// HeatmapService renders the body heatmap from the live frame
type HeatmapService struct {
	pressure *PressureService
	surface  heatmap.SurfaceDimensions
}

// NewHeatmapService creates a heatmap service with a default rendering surface
func NewHeatmapService(pressure *PressureService, surface heatmap.SurfaceDimensions) *HeatmapService {
	return &HeatmapService{pressure: pressure, surface: surface}
}

// Render samples the current frame on the requested grid
func (s *HeatmapService) Render(filter models.HeatmapFilter) (*models.HeatmapResponse, error) {
	surface := s.surfaceFor(filter.Width, filter.Height)
	if err := surface.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cols, rows := filter.Cols, filter.Rows
	if cols == 0 {
		cols = defaultGridCols
	}
	if rows == 0 {
		rows = defaultGridRows
	}
	if cols < 1 || rows < 1 || cols > maxGridCells || rows > maxGridCells || cols*rows > maxGridCells {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidInput, cols, rows)
	}

	grid := heatmap.RenderGrid(s.pressure.Sources(), surface, cols, rows)
	return &models.HeatmapResponse{
		Grid:    grid,
		Zones:   s.pressure.source.Pressure(),
		Palette: Palette(),
	}, nil
}

// RenderPNG writes the current frame as a PNG of the requested size
func (s *HeatmapService) RenderPNG(w io.Writer, width, height float64) error {
	surface := s.surfaceFor(width, height)
	if err := surface.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if surface.Width < 1 || surface.Height < 1 {
		return fmt.Errorf("%w: image smaller than 1px", ErrInvalidInput)
	}
	if surface.Width > maxImageSide || surface.Height > maxImageSide {
		return fmt.Errorf("%w: image larger than %dpx", ErrInvalidInput, maxImageSide)
	}

	img := heatmap.RenderImage(s.pressure.Sources(), surface)
	if err := heatmap.EncodePNG(w, img); err != nil {
		return fmt.Errorf("failed to encode heatmap: %w", err)
	}
	return nil
}

// Estimate validates a caller-supplied query and runs the estimator once
func (s *HeatmapService) Estimate(req models.IntensityRequest) (*models.IntensityResponse, error) {
	if err := req.Surface.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i, src := range req.Sources {
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("%w: source %d: %v", ErrInvalidInput, i, err)
		}
	}

	v := heatmap.EstimateIntensity(r2.Point{X: req.Position.X, Y: req.Position.Y}, req.Sources, req.Surface)
	c := heatmap.IntensityCategory(v)
	return &models.IntensityResponse{
		Intensity: v,
		Category:  c,
		Color:     c.Color().Hex(),
	}, nil
}

// Palette lists every category with its color, lowest first
func Palette() []models.PaletteEntry {
	var out []models.PaletteEntry
	for c := heatmap.CategoryNone; c <= heatmap.CategoryCritical; c++ {
		out = append(out, models.PaletteEntry{Category: c, Color: c.Color().Hex()})
	}
	return out
}

func (s *HeatmapService) surfaceFor(width, height float64) heatmap.SurfaceDimensions {
	surface := s.surface
	if width != 0 {
		surface.Width = width
	}
	if height != 0 {
		surface.Height = height
	}
	return surface
}
