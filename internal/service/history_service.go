package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jengzang/pressuremap-backend-go/internal/models"
	"github.com/jengzang/pressuremap-backend-go/internal/stats"
	log "github.com/sirupsen/logrus"
)

// HistoryStore persists and queries history entries
type HistoryStore interface {
	InsertBatch(ctx context.Context, entries []models.HistoryEntry) error
	List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error)
	Count(ctx context.Context) (int, error)
}

// HistoryGenerator produces a backfill of history entries
type HistoryGenerator interface {
	HistoryData(now time.Time) []models.HistoryEntry
}

// HistoryService handles business logic for the pressure history log
type HistoryService struct {
	store HistoryStore
}

// NewHistoryService creates a new history service
func NewHistoryService(store HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns entries matching filter, newest first
func (s *HistoryService) List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error) {
	if err := normalizeFilter(&filter); err != nil {
		return nil, err
	}

	entries, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// Statistics summarizes the entries matching filter
func (s *HistoryService) Statistics(ctx context.Context, filter models.HistoryFilter) (models.HistoryStatistics, error) {
	entries, err := s.List(ctx, filter)
	if err != nil {
		return models.HistoryStatistics{}, err
	}
	return stats.SummarizeHistory(entries), nil
}

// Seed backfills the log when it is empty, returning how many entries were written
func (s *HistoryService) Seed(ctx context.Context, gen HistoryGenerator, now time.Time) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.WithField("entries", n).Debug("[HistoryService] History present, skipping seed")
		return 0, nil
	}

	entries := gen.HistoryData(now)
	if err := s.store.InsertBatch(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to seed history: %w", err)
	}

	log.WithField("entries", len(entries)).Info("[HistoryService] Seeded history")
	return len(entries), nil
}

func normalizeFilter(f *models.HistoryFilter) error {
	if f.Range == "" {
		f.Range = models.Range24h
	}
	if !f.Range.Valid() {
		return fmt.Errorf("%w: unknown range %q", ErrInvalidInput, f.Range)
	}
	if f.Zone == "" {
		f.Zone = models.AllZones
	}
	if f.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidInput)
	}
	return nil
}
