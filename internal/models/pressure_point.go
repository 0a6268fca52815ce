package models

import (
	"fmt"
	"time"

	"github.com/jengzang/pressuremap-backend-go/internal/heatmap"
)

const (
	// CriticalPressure marks a zone for the active alert panel
	CriticalPressure = 0.6
	// SeverePressure marks a zone (or history event) as critical
	SeverePressure = 0.8
	// CoolingThreshold is the accumulated load after which a loaded zone gets cooled
	CoolingThreshold = 2 * time.Hour
)

// PressurePoint represents the live state of one monitored body zone
type PressurePoint struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	X               float64 `json:"x"`                // Normalized 0-1
	Y               float64 `json:"y"`                // Normalized 0-1
	CurrentPressure float64 `json:"current_pressure"` // 0-1
	AccumulatedTime int64   `json:"accumulated_time"` // Milliseconds under load
	IsBeingCooled   bool    `json:"is_being_cooled"`
	LastUpdated     int64   `json:"last_updated"` // Unix millis
}

// Source converts the zone into an interpolation source with the default radius
func (p PressurePoint) Source() heatmap.SourcePoint {
	return heatmap.NewSourcePoint(p.X, p.Y, p.CurrentPressure)
}

// IsCritical reports whether the zone belongs on the alert panel
func (p PressurePoint) IsCritical() bool {
	return p.CurrentPressure > CriticalPressure
}

// AlertLevel is the severity shown for a zone
type AlertLevel string

const (
	AlertNormal   AlertLevel = "normal"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// AlertLevelFor classifies a pressure reading
func AlertLevelFor(pressure float64) AlertLevel {
	switch {
	case pressure > SeverePressure:
		return AlertCritical
	case pressure > CriticalPressure:
		return AlertWarning
	default:
		return AlertNormal
	}
}

// FormatDuration renders milliseconds as "Xh Ym"
func FormatDuration(millis int64) string {
	d := time.Duration(millis) * time.Millisecond
	hours := int64(d / time.Hour)
	minutes := int64(d/time.Minute) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// PressureAlert is a zone rendered for the alert panel
type PressureAlert struct {
	PressurePoint
	Level    AlertLevel `json:"level"`
	Color    string     `json:"color"`
	Duration string     `json:"duration"`
}

// NewPressureAlert decorates a zone for display
func NewPressureAlert(p PressurePoint) PressureAlert {
	return PressureAlert{
		PressurePoint: p,
		Level:         AlertLevelFor(p.CurrentPressure),
		Color:         heatmap.ZoneColor(p.CurrentPressure).Hex(),
		Duration:      FormatDuration(p.AccumulatedTime),
	}
}

// PredictionPoint is a simulated forecast of rising pressure at a zone
type PredictionPoint struct {
	ZoneID         string  `json:"zone_id"`
	ZoneName       string  `json:"zone_name"`
	Probability    float64 `json:"probability"`      // 0-1
	TimeToIncrease int     `json:"time_to_increase"` // Minutes
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
}

// NeedsPreventiveCooling reports whether cooling should be scheduled for the zone
func (p PredictionPoint) NeedsPreventiveCooling() bool {
	return p.Probability > CriticalPressure
}
