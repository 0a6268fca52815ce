package stats

import (
	"github.com/jengzang/pressuremap-backend-go/internal/models"
	"gonum.org/v1/gonum/stat"
)

const (
	trendWindow    = 6
	trendRecent    = 3
	trendThreshold = 0.1
	noZone         = "N/A"
)

// SummarizeHistory computes the statistics panel for entries sorted newest first
func SummarizeHistory(entries []models.HistoryEntry) models.HistoryStatistics {
	s := models.HistoryStatistics{
		TotalEvents:      len(entries),
		MostAffectedZone: noZone,
		Trend:            PressureTrend(entries),
	}
	if len(entries) == 0 {
		return s
	}

	levels := make([]float64, len(entries))
	for i, e := range entries {
		levels[i] = e.PressureLevel
		if e.PressureLevel > models.SeverePressure {
			s.CriticalEvents++
		}
		if e.CoolingActivated {
			s.CoolingActivations++
		}
	}

	s.AveragePressure = stat.Mean(levels, nil)
	s.AveragePercent = int(s.AveragePressure * 100)
	s.MostAffectedZone = mostFrequentZone(entries)
	return s
}

// PressureTrend compares the three newest entries against the next three
func PressureTrend(entries []models.HistoryEntry) models.Trend {
	if len(entries) < 2 {
		return models.TrendInsufficient
	}

	window := entries
	if len(window) > trendWindow {
		window = window[:trendWindow]
	}
	if len(window) <= trendRecent {
		return models.TrendStable
	}

	recent := levelsOf(window[:trendRecent])
	older := levelsOf(window[trendRecent:])
	r, o := stat.Mean(recent, nil), stat.Mean(older, nil)

	switch {
	case r > o+trendThreshold:
		return models.TrendIncreasing
	case r < o-trendThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// mostFrequentZone picks the zone with most entries; ties go to the zone seen first
func mostFrequentZone(entries []models.HistoryEntry) string {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if counts[e.ZoneName] == 0 {
			order = append(order, e.ZoneName)
		}
		counts[e.ZoneName]++
	}

	best, bestCount := noZone, 0
	for _, z := range order {
		if counts[z] > bestCount {
			best, bestCount = z, counts[z]
		}
	}
	return best
}

func levelsOf(entries []models.HistoryEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.PressureLevel
	}
	return out
}
