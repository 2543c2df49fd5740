package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/produce"
	"gorm.io/gorm"
)

// SuggestionService ranks a household's recipes against what is in the fridge
type SuggestionService struct {
	db      *gorm.DB
	scorer  *produce.Scorer
	history HistoryStore
	record  int
	now     func() time.Time
}

// NewSuggestionService wires the scorer and history. record is how many of
// the top suggestions are remembered per call for the diversity penalty.
func NewSuggestionService(db *gorm.DB, scorer *produce.Scorer, history HistoryStore, record int, now func() time.Time) *SuggestionService {
	if scorer == nil {
		scorer = produce.NewScorer(produce.ScorerOptions{})
	}
	if history == nil {
		history = NewMemoryHistoryStore(0)
	}
	if now == nil {
		now = time.Now
	}
	return &SuggestionService{db: db, scorer: scorer, history: history, record: record, now: now}
}

// Suggest returns at most limit ranked suggestions; limit <= 0 means all.
func (s *SuggestionService) Suggest(ctx context.Context, userID uuid.UUID, limit int) ([]produce.RankedSuggestion, error) {
	var items []model.InventoryItem
	if err := s.db.WithContext(ctx).Where("user_id = ? AND is_used = ?", userID, false).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	history, err := s.history.Recent(ctx, userID, s.scorer.Window())
	if err != nil {
		// Ranking still works without history, just without diversity
		log.Printf("[SuggestionService] history unavailable for %s: %v", userID, err)
		history = nil
	}

	ranked, _ := s.scorer.Rank(recipes, items, history, s.now())
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	if n := min(s.record, len(ranked)); n > 0 {
		entries := make([]produce.HistoryEntry, n)
		// Recorded best last so it is the most recent entry
		for i := 0; i < n; i++ {
			r := ranked[n-1-i]
			entries[i] = produce.HistoryEntry{RecipeID: r.RecipeID, Cuisine: r.Cuisine}
		}
		if err := s.history.Record(ctx, userID, entries...); err != nil {
			log.Printf("[SuggestionService] failed to record history for %s: %v", userID, err)
		}
	}

	log.Printf("[SuggestionService] %d suggestions for %s from %d recipes and %d items", len(ranked), userID, len(recipes), len(items))
	return ranked, nil
}
