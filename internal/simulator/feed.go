package simulator

import (
	"context"
	"sync"
	"time"

	"github.com/jengzang/pressuremap-backend-go/internal/models"
	log "github.com/sirupsen/logrus"
)

// HistorySink receives every pressure frame as history entries
type HistorySink interface {
	InsertBatch(ctx context.Context, entries []models.HistoryEntry) error
}

// Feed holds the latest simulated snapshot for readers
type Feed struct {
	mu          sync.RWMutex
	zones       []models.PressurePoint
	predictions []models.PredictionPoint
	frames      int64
}

// Pressure returns a copy of the latest zone frame
func (f *Feed) Pressure() []models.PressurePoint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]models.PressurePoint(nil), f.zones...)
}

// Predictions returns a copy of the latest prediction set
func (f *Feed) Predictions() []models.PredictionPoint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]models.PredictionPoint(nil), f.predictions...)
}

// Frames returns how many pressure frames have been published
func (f *Feed) Frames() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frames
}

func (f *Feed) setPressure(zones []models.PressurePoint) {
	f.mu.Lock()
	f.zones = zones
	f.frames++
	f.mu.Unlock()
}

func (f *Feed) setPredictions(p []models.PredictionPoint) {
	f.mu.Lock()
	f.predictions = p
	f.mu.Unlock()
}

// Runner drives a Provider on fixed intervals and publishes into a Feed
type Runner struct {
	Provider           *Provider
	Feed               *Feed
	Sink               HistorySink // optional
	PressureInterval   time.Duration
	PredictionInterval time.Duration
}

// Run publishes an initial snapshot, then ticks until ctx is done
func (r *Runner) Run(ctx context.Context) {
	r.publishPressure(ctx)
	r.Feed.setPredictions(r.Provider.NextPredictions())

	pressureTicker := time.NewTicker(r.PressureInterval)
	defer pressureTicker.Stop()
	predictionTicker := time.NewTicker(r.PredictionInterval)
	defer predictionTicker.Stop()

	log.WithFields(log.Fields{
		"pressure_interval":   r.PressureInterval,
		"prediction_interval": r.PredictionInterval,
	}).Info("[Simulator] Started")

	for {
		select {
		case <-ctx.Done():
			log.WithField("frames", r.Feed.Frames()).Info("[Simulator] Stopped")
			return
		case <-pressureTicker.C:
			r.publishPressure(ctx)
		case <-predictionTicker.C:
			r.Feed.setPredictions(r.Provider.NextPredictions())
		}
	}
}

func (r *Runner) publishPressure(ctx context.Context) {
	frame := r.Provider.NextPressureFrame()
	r.Feed.setPressure(frame)

	if r.Sink == nil {
		return
	}
	if err := r.Sink.InsertBatch(ctx, FrameEntries(frame)); err != nil && ctx.Err() == nil {
		log.WithError(err).Warn("[Simulator] Failed to record pressure frame")
	}
}
