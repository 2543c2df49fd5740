package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/planner"
	"github.com/pageza/harvestplan/backend/internal/produce"
	"github.com/pageza/harvestplan/backend/internal/types"
	"gorm.io/gorm"
)

// DefaultPlanDays is the plan length when the request leaves it out.
const DefaultPlanDays = 7

// PlanService builds week plans from stored recipes. School menu entries for
// a date keep the same item off the table at home that day.
type PlanService struct {
	db     *gorm.DB
	scorer *produce.Scorer
	now    func() time.Time
}

func NewPlanService(db *gorm.DB, scorer *produce.Scorer, now func() time.Time) *PlanService {
	if scorer == nil {
		scorer = produce.NewScorer(produce.ScorerOptions{})
	}
	if now == nil {
		now = time.Now
	}
	return &PlanService{db: db, scorer: scorer, now: now}
}

func (s *PlanService) GenerateWeek(ctx context.Context, userID uuid.UUID, req *types.WeekPlanRequest) (*planner.Plan, error) {
	now := s.now()
	start, err := parseDate("start_date", req.StartDate, now.Location())
	if err != nil {
		return nil, err
	}
	days := req.Days
	if days == 0 {
		days = DefaultPlanDays
	}
	if days < 0 || days > planner.MaxDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", apperr.ErrInvalidInput, planner.MaxDays)
	}

	mealTypes := make([]model.MealType, len(req.MealTypes))
	for i, mt := range req.MealTypes {
		mealTypes[i] = model.MealType(mt)
	}

	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	var menu []model.SchoolMenuEntry
	end := start.AddDate(0, 0, days)
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&menu).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load school menu: %w", err)
	}
	byDate := map[string][]string{}
	byMeal := map[string]map[model.MealType][]string{}
	for _, e := range menu {
		key := e.Date.In(now.Location()).Format(dateLayout)
		if e.MealType == "" {
			byDate[key] = append(byDate[key], e.ItemName)
			continue
		}
		if byMeal[key] == nil {
			byMeal[key] = map[model.MealType][]string{}
		}
		byMeal[key][e.MealType] = append(byMeal[key][e.MealType], e.ItemName)
	}

	var inventory []model.InventoryItem
	if req.UseInventory {
		if err := s.db.WithContext(ctx).Where("user_id = ? AND is_used = ?", userID, false).Find(&inventory).Error; err != nil {
			return nil, fmt.Errorf("failed to load inventory: %w", err)
		}
	}

	seed := now.UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	gen := planner.NewGenerator(s.scorer, planner.NewSeededSource(seed))

	plan, err := gen.Generate(planner.Request{
		StartDate:       start,
		Days:            days,
		MealTypes:       mealTypes,
		Candidates:      recipes,
		Cuisines:        req.Cuisines,
		Disliked:        req.Disliked,
		DislikedByDate:  byDate,
		DislikedByMeal:  byMeal,
		BalanceCuisines: req.BalanceCuisines,
		Inventory:       inventory,
		Now:             now,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[PlanService] plan for %s: %d slots, %d unfilled, degraded=%t", userID, len(plan.Slots), plan.Unfilled, plan.Degraded)
	return &plan, nil
}

// SchoolMenuService records school meals per date
type SchoolMenuService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewSchoolMenuService(db *gorm.DB, loc *time.Location) *SchoolMenuService {
	if loc == nil {
		loc = time.Local
	}
	return &SchoolMenuService{db: db, loc: loc}
}

func (s *SchoolMenuService) AddEntries(ctx context.Context, userID uuid.UUID, req *types.SchoolMenuRequest) ([]model.SchoolMenuEntry, error) {
	entries := make([]model.SchoolMenuEntry, 0, len(req.Entries))
	for i, e := range req.Entries {
		date, err := parseDate(fmt.Sprintf("entries[%d].date", i), e.Date, s.loc)
		if err != nil {
			return nil, err
		}
		var mt model.MealType
		if e.MealType != "" {
			if mt, err = model.ParseMealType(e.MealType); err != nil {
				return nil, fmt.Errorf("%w: entries[%d]: %v", apperr.ErrInvalidInput, i, err)
			}
		}
		entries = append(entries, model.SchoolMenuEntry{
			UserID:   userID,
			Date:     date,
			MealType: mt,
			ItemName: e.ItemName,
		})
	}
	if len(entries) == 0 {
		return entries, nil
	}
	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to save school menu: %w", err)
	}
	return entries, nil
}

// ListEntries returns entries with from <= date < to. Zero bounds are open.
func (s *SchoolMenuService) ListEntries(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.SchoolMenuEntry, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date < ?", to)
	}
	var entries []model.SchoolMenuEntry
	if err := query.Order("date, item_name").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list school menu: %w", err)
	}
	return entries, nil
}
