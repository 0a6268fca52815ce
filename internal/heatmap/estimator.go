package heatmap

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// DefaultInfluenceRadius is the fraction of the shorter surface side a source reaches
const DefaultInfluenceRadius = 0.15

var (
	ErrInvalidSurface = errors.New("invalid surface dimensions")
	ErrInvalidSource  = errors.New("invalid source point")
)

// SourcePoint is a pressure reading at a normalized (0-1) surface location
type SourcePoint struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Pressure        float64 `json:"pressure"`
	InfluenceRadius float64 `json:"influence_radius"`
}

// NewSourcePoint creates a source point with the default influence radius
func NewSourcePoint(x, y, pressure float64) SourcePoint {
	return SourcePoint{X: x, Y: y, Pressure: pressure, InfluenceRadius: DefaultInfluenceRadius}
}

// Validate checks the ranges a caller must guarantee before estimating
func (p SourcePoint) Validate() error {
	if p.InfluenceRadius <= 0 || p.InfluenceRadius > 1 {
		return fmt.Errorf("%w: influence radius %v outside (0,1]", ErrInvalidSource, p.InfluenceRadius)
	}
	if p.Pressure < 0 || p.Pressure > 1 {
		return fmt.Errorf("%w: pressure %v outside [0,1]", ErrInvalidSource, p.Pressure)
	}
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return fmt.Errorf("%w: position (%v,%v) outside unit square", ErrInvalidSource, p.X, p.Y)
	}
	return nil
}

// SurfaceDimensions is the size of the rendering surface in pixels or units
type SurfaceDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MinDimension returns the shorter side
func (s SurfaceDimensions) MinDimension() float64 {
	return math.Min(s.Width, s.Height)
}

// Validate rejects non-positive sides
func (s SurfaceDimensions) Validate() error {
	if !(s.Width > 0) || !(s.Height > 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSurface, s.Width, s.Height)
	}
	return nil
}

// EstimateIntensity interpolates pressure at position using Gaussian weights
// (sigma = influenceDistance/3) over the sources within their influence distance.
// Sources at or beyond their influence distance are ignored. The result is a
// weighted average, 0 when no source is in range.
func EstimateIntensity(position r2.Point, sources []SourcePoint, surface SurfaceDimensions) float64 {
	var totalInfluence, totalWeight float64

	for _, src := range sources {
		pointPos := r2.Point{X: surface.Width * src.X, Y: surface.Height * src.Y}
		distance := position.Sub(pointPos).Norm()
		influenceDistance := surface.MinDimension() * src.InfluenceRadius

		if distance >= influenceDistance {
			continue
		}

		sigma := influenceDistance / 3
		weight := math.Exp(-(distance * distance) / (2 * sigma * sigma))
		totalInfluence += src.Pressure * weight
		totalWeight += weight
	}

	if totalWeight > 0 {
		return totalInfluence / totalWeight
	}
	return 0
}
