package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/pressuremap-backend-go/internal/database"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
)

// MaxHistoryRows caps a single history query
const MaxHistoryRows = 10000

// HistoryRepository handles database operations for history entries
type HistoryRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db, now: time.Now}
}

// InsertBatch stores entries in a single transaction
func (r *HistoryRepository) InsertBatch(ctx context.Context, entries []models.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO history_entries
			(id, timestamp, zone_id, zone_name, pressure_level, cooling_activated)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare history insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			_, err := stmt.ExecContext(ctx, e.ID, e.Timestamp, e.ZoneID, e.ZoneName, e.PressureLevel, e.CoolingActivated)
			if err != nil {
				return fmt.Errorf("failed to insert history entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// List retrieves history entries matching filter, newest first
func (r *HistoryRepository) List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error) {
	query := `SELECT id, timestamp, zone_id, zone_name, pressure_level, cooling_activated
		FROM history_entries`

	var conditions []string
	var args []interface{}

	if window := filter.Range.Window(); window > 0 {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, r.now().Add(-window).UnixMilli())
	}
	if filter.Zone != "" && !strings.EqualFold(filter.Zone, models.AllZones) {
		conditions = append(conditions, "zone_name = ?")
		args = append(args, filter.Zone)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY timestamp DESC, zone_id"

	limit := filter.Limit
	if limit <= 0 || limit > MaxHistoryRows {
		limit = MaxHistoryRows
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.ZoneID, &e.ZoneName, &e.PressureLevel, &e.CoolingActivated); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history entries: %w", err)
	}

	return entries, nil
}

// Count returns the number of stored entries
func (r *HistoryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history_entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return n, nil
}

// Zones returns the distinct zone names present in history
func (r *HistoryRepository) Zones(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT zone_name FROM history_entries ORDER BY zone_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query history zones: %w", err)
	}
	defer rows.Close()

	zones := []string{}
	for rows.Next() {
		var z string
		if err := rows.Scan(&z); err != nil {
			return nil, fmt.Errorf("failed to scan history zone: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}
