package simulator

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
)

var bodyZones = []models.PressurePoint{
	{ID: "sacral", Name: "Sacral Zone", X: 0.5, Y: 0.65, CurrentPressure: 0.7, AccumulatedTime: 8100000, IsBeingCooled: true},
	{ID: "heel_left", Name: "Left Heel", X: 0.3, Y: 0.9, CurrentPressure: 0.4, AccumulatedTime: 3600000},
	{ID: "heel_right", Name: "Right Heel", X: 0.7, Y: 0.9, CurrentPressure: 0.8, AccumulatedTime: 9900000, IsBeingCooled: true},
	{ID: "shoulder_left", Name: "Left Shoulder", X: 0.2, Y: 0.25, CurrentPressure: 0.3, AccumulatedTime: 1800000},
	{ID: "shoulder_right", Name: "Right Shoulder", X: 0.8, Y: 0.25, CurrentPressure: 0.5, AccumulatedTime: 5400000},
	{ID: "elbow_left", Name: "Left Elbow", X: 0.15, Y: 0.4, CurrentPressure: 0.2, AccumulatedTime: 900000},
	{ID: "elbow_right", Name: "Right Elbow", X: 0.85, Y: 0.4, CurrentPressure: 0.6, AccumulatedTime: 7200000, IsBeingCooled: true},
	{ID: "hip_left", Name: "Left Hip", X: 0.35, Y: 0.55, CurrentPressure: 0.4, AccumulatedTime: 2700000},
	{ID: "hip_right", Name: "Right Hip", X: 0.65, Y: 0.55, CurrentPressure: 0.3, AccumulatedTime: 1800000},
}

var basePredictions = []models.PredictionPoint{
	{ZoneID: "ankle_left", ZoneName: "Left Ankle", Probability: 0.75, TimeToIncrease: 25, X: 0.25, Y: 0.85},
	{ZoneID: "knee_right", ZoneName: "Right Knee", Probability: 0.68, TimeToIncrease: 35, X: 0.75, Y: 0.7},
	{ZoneID: "wrist_left", ZoneName: "Left Wrist", Probability: 0.55, TimeToIncrease: 45, X: 0.1, Y: 0.35},
}

const (
	pressureJitter    = 0.05
	minTimeIncrement  = 1000 // ms
	maxTimeIncrement  = 3000 // ms
	minutesJitter     = 5
	minTimeToIncrease = 5
	historyHours      = 24
)

// Provider generates simulated pressure frames, predictions and history.
// Successive frames random-walk from the previous one.
type Provider struct {
	mu    sync.Mutex
	rng   *rand.Rand
	zones []models.PressurePoint
	now   func() time.Time
}

// NewProvider creates a provider seeded from rng; a nil rng uses the current time
func NewProvider(rng *rand.Rand) *Provider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	zones := make([]models.PressurePoint, len(bodyZones))
	copy(zones, bodyZones)
	return &Provider{rng: rng, zones: zones, now: time.Now}
}

// Zones returns the current zone state without advancing it
func (p *Provider) Zones() []models.PressurePoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.PressurePoint(nil), p.zones...)
}

// NextPressureFrame advances every zone by one step
func (p *Provider) NextPressureFrame() []models.PressurePoint {
	p.mu.Lock()
	defer p.mu.Unlock()

	ts := p.now().UnixMilli()
	for i, z := range p.zones {
		pressure := clamp(z.CurrentPressure+p.jitter(pressureJitter), 0, 1)
		increment := minTimeIncrement + p.rng.Int63n(maxTimeIncrement-minTimeIncrement)

		z.IsBeingCooled = pressure > models.CriticalPressure &&
			z.AccumulatedTime > models.CoolingThreshold.Milliseconds()
		z.CurrentPressure = pressure
		z.AccumulatedTime += increment
		z.LastUpdated = ts
		p.zones[i] = z
	}

	return append([]models.PressurePoint(nil), p.zones...)
}

// NextPredictions returns the prediction set perturbed around its base values
func (p *Provider) NextPredictions() []models.PredictionPoint {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]models.PredictionPoint, len(basePredictions))
	for i, pr := range basePredictions {
		pr.Probability = clamp(pr.Probability+p.jitter(pressureJitter), 0, 1)
		pr.TimeToIncrease += p.rng.Intn(2*minutesJitter) - minutesJitter
		if pr.TimeToIncrease < minTimeToIncrease {
			pr.TimeToIncrease = minTimeToIncrease
		}
		out[i] = pr
	}
	return out
}

// HistoryData produces hourly entries for every zone over the last day, newest first
func (p *Provider) HistoryData(now time.Time) []models.HistoryEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	history := make([]models.HistoryEntry, 0, len(p.zones)*historyHours)
	for _, z := range p.zones {
		for i := 1; i <= historyHours; i++ {
			pressure := p.rng.Float64()
			history = append(history, models.HistoryEntry{
				ID:               uuid.NewString(),
				Timestamp:        now.Add(-time.Duration(i) * time.Hour).UnixMilli(),
				ZoneID:           z.ID,
				ZoneName:         z.Name,
				PressureLevel:    pressure,
				CoolingActivated: pressure > models.CriticalPressure,
			})
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp > history[j].Timestamp
	})
	return history
}

// FrameEntries converts a pressure frame into history entries
func FrameEntries(frame []models.PressurePoint) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, len(frame))
	for i, z := range frame {
		entries[i] = models.HistoryEntry{
			ID:               uuid.NewString(),
			Timestamp:        z.LastUpdated,
			ZoneID:           z.ID,
			ZoneName:         z.Name,
			PressureLevel:    z.CurrentPressure,
			CoolingActivated: z.IsBeingCooled,
		}
	}
	return entries
}

// jitter returns a uniform value in [-amp, amp)
func (p *Provider) jitter(amp float64) float64 {
	return p.rng.Float64()*2*amp - amp
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
