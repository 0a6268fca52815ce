package service

import (
	"github.com/jengzang/pressuremap-backend-go/internal/heatmap"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
)

// PressureSource supplies the latest simulated readings
type PressureSource interface {
	Pressure() []models.PressurePoint
	Predictions() []models.PredictionPoint
}

// PressureSnapshot is the dashboard view of the current frame
type PressureSnapshot struct {
	Zones  []models.PressurePoint `json:"zones"`
	Alerts []models.PressureAlert `json:"alerts"`
}

// PressureService handles business logic for live pressure and predictions
type PressureService struct {
	source PressureSource
}

// NewPressureService creates a new pressure service
func NewPressureService(source PressureSource) *PressureService {
	return &PressureService{source: source}
}

// Current returns the latest zones and the alert panel entries
func (s *PressureService) Current() PressureSnapshot {
	zones := s.source.Pressure()
	snap := PressureSnapshot{Zones: zones, Alerts: []models.PressureAlert{}}
	for _, z := range zones {
		if z.IsCritical() {
			snap.Alerts = append(snap.Alerts, models.NewPressureAlert(z))
		}
	}
	return snap
}

// Sources converts the latest zones into interpolation sources
func (s *PressureService) Sources() []heatmap.SourcePoint {
	zones := s.source.Pressure()
	out := make([]heatmap.SourcePoint, len(zones))
	for i, z := range zones {
		out[i] = z.Source()
	}
	return out
}

// PredictionView is a prediction decorated for display
type PredictionView struct {
	models.PredictionPoint
	PreventiveCooling bool   `json:"preventive_cooling"`
	Color             string `json:"color"`
}

// Predictions returns the latest prediction set
func (s *PressureService) Predictions() []PredictionView {
	preds := s.source.Predictions()
	out := make([]PredictionView, len(preds))
	for i, p := range preds {
		out[i] = PredictionView{
			PredictionPoint:   p,
			PreventiveCooling: p.NeedsPreventiveCooling(),
			Color:             heatmap.ZoneColor(p.Probability).Hex(),
		}
	}
	return out
}
