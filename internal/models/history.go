package models

import "time"

// HistoryEntry is one logged pressure sample for a zone
type HistoryEntry struct {
	ID               string  `json:"id" db:"id"`
	Timestamp        int64   `json:"timestamp" db:"timestamp"` // Unix millis
	ZoneID           string  `json:"zone_id" db:"zone_id"`
	ZoneName         string  `json:"zone_name" db:"zone_name"`
	PressureLevel    float64 `json:"pressure_level" db:"pressure_level"` // 0-1
	CoolingActivated bool    `json:"cooling_activated" db:"cooling_activated"`
}

// HistoryRange is a look-back window for history queries
type HistoryRange string

const (
	Range1h  HistoryRange = "1h"
	Range6h  HistoryRange = "6h"
	Range24h HistoryRange = "24h"
	RangeAll HistoryRange = "all"
)

// Window returns the look-back duration, zero meaning unbounded
func (r HistoryRange) Window() time.Duration {
	switch r {
	case Range1h:
		return time.Hour
	case Range6h:
		return 6 * time.Hour
	case Range24h:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Valid reports whether r is a known range token
func (r HistoryRange) Valid() bool {
	switch r {
	case Range1h, Range6h, Range24h, RangeAll:
		return true
	}
	return false
}

// AllZones selects every zone in a history filter
const AllZones = "all"

// HistoryFilter represents filter parameters for querying history entries
type HistoryFilter struct {
	Range HistoryRange `form:"range"` // 1h, 6h, 24h, all
	Zone  string       `form:"zone"`  // Zone name or "all"
	Limit int          `form:"limit"`
}

// Trend describes the direction of recent pressure
type Trend string

const (
	TrendIncreasing   Trend = "increasing"
	TrendDecreasing   Trend = "decreasing"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient_data"
)

// HistoryStatistics summarizes a set of history entries
type HistoryStatistics struct {
	TotalEvents        int     `json:"total_events"`
	CriticalEvents     int     `json:"critical_events"`
	CoolingActivations int     `json:"cooling_activations"`
	AveragePressure    float64 `json:"average_pressure"`
	AveragePercent     int     `json:"average_percent"`
	MostAffectedZone   string  `json:"most_affected_zone"`
	Trend              Trend   `json:"trend"`
}
