package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/produce"
	"github.com/pageza/harvestplan/backend/internal/types"
	"gorm.io/gorm"
)

// DefaultShelfLifeDays is used when an item is entered without a shelf life.
const DefaultShelfLifeDays = 7

// InventoryService handles the household's perishable inventory
type InventoryService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewInventoryService(db *gorm.DB, now func() time.Time) *InventoryService {
	if now == nil {
		now = time.Now
	}
	return &InventoryService{db: db, now: now}
}

func (s *InventoryService) List(ctx context.Context, userID uuid.UUID, includeUsed bool) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeUsed {
		query = query.Where("is_used = ?", false)
	}
	if err := query.Order("acquired_date, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (s *InventoryService) Create(ctx context.Context, userID uuid.UUID, req *types.InventoryItemRequest) (*model.InventoryItem, error) {
	item, err := s.build(userID, req, "")
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

// BulkCreate adds every valid pasted line and extractor record in one
// transaction. Invalid entries are reported back and never block the rest.
func (s *InventoryService) BulkCreate(ctx context.Context, userID uuid.UUID, req *types.BulkInventoryRequest) (*types.BulkInventoryResponse, error) {
	resp := &types.BulkInventoryResponse{
		Created:  []model.InventoryItem{},
		Rejected: []types.BulkRejection{},
	}

	var items []*model.InventoryItem
	reject := func(line int, input string, err error) {
		resp.Rejected = append(resp.Rejected, types.BulkRejection{Line: line, Input: input, Error: err.Error()})
	}

	for i, raw := range strings.Split(req.Text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parsed, err := ParseBulkLine(line)
		if err != nil {
			reject(i+1, line, err)
			continue
		}
		item, err := s.build(userID, &parsed, req.AcquiredDate)
		if err != nil {
			reject(i+1, line, err)
			continue
		}
		items = append(items, item)
	}

	for i := range req.Items {
		rec := req.Items[i]
		item, err := s.build(userID, &rec, req.AcquiredDate)
		if err != nil {
			reject(0, rec.Name, err)
			continue
		}
		items = append(items, item)
	}

	if len(items) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, item := range items {
				if err := tx.Create(item).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save inventory items: %w", err)
		}
		for _, item := range items {
			resp.Created = append(resp.Created, *item)
		}
	}

	log.Printf("[InventoryService] bulk add for %s: %d created, %d rejected", userID, len(resp.Created), len(resp.Rejected))
	return resp, nil
}

func (s *InventoryService) Update(ctx context.Context, userID, id uuid.UUID, req *types.UpdateInventoryItemRequest) (*model.InventoryItem, error) {
	item, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperr.ErrInvalidInput)
		}
		item.Name = name
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", apperr.ErrInvalidInput)
		}
		item.Quantity = req.Quantity
	}
	if req.Unit != nil {
		item.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.EstimatedShelfLifeDays != nil {
		if *req.EstimatedShelfLifeDays < 0 {
			return nil, fmt.Errorf("%w: shelf life must not be negative", apperr.ErrInvalidInput)
		}
		item.EstimatedShelfLifeDays = *req.EstimatedShelfLifeDays
	}
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) MarkUsed(ctx context.Context, userID, id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item.MarkUsed(s.now())
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to mark item used: %w", err)
	}
	return item, nil
}

func (s *InventoryService) MarkUnused(ctx context.Context, userID, id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item.MarkUnused()
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to mark item unused: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.InventoryItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Urgency reports every unused item with its days remaining, most urgent first.
func (s *InventoryService) Urgency(ctx context.Context, userID uuid.UUID) ([]produce.Urgency, error) {
	items, err := s.List(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	stock, errs := produce.BuildStock(items, s.now())
	for _, err := range errs {
		log.Printf("[InventoryService] skipping inventory record: %v", err)
	}
	out := make([]produce.Urgency, len(stock))
	for i, st := range stock {
		out[i] = st.Urgency
	}
	return out, nil
}

func (s *InventoryService) get(ctx context.Context, userID, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory item: %w", err)
	}
	return &item, nil
}

// build validates a request and turns it into an unsaved item. fallbackDate
// applies when the request carries no acquisition date of its own.
func (s *InventoryService) build(userID uuid.UUID, req *types.InventoryItemRequest, fallbackDate string) (*model.InventoryItem, error) {
	now := s.now()
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", apperr.ErrInvalidInput)
	}

	shelfLife := DefaultShelfLifeDays
	if req.EstimatedShelfLifeDays != nil {
		shelfLife = *req.EstimatedShelfLifeDays
	}
	if shelfLife < 0 {
		return nil, fmt.Errorf("%w: shelf life must not be negative", apperr.ErrInvalidInput)
	}

	acquired := now
	dateStr := req.AcquiredDate
	if dateStr == "" {
		dateStr = fallbackDate
	}
	if dateStr != "" {
		d, err := parseDate("acquired_date", dateStr, now.Location())
		if err != nil {
			return nil, err
		}
		acquired = d
	}

	return &model.InventoryItem{
		UserID:                 userID,
		Name:                   name,
		Quantity:               req.Quantity,
		Unit:                   strings.TrimSpace(req.Unit),
		AcquiredDate:           acquired,
		EstimatedShelfLifeDays: shelfLife,
	}, nil
}
