package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/model"
	"github.com/pageza/mealwise/backend/internal/types"
)

// ShoppingListService manages user shopping lists
type ShoppingListService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewShoppingListService(db *gorm.DB, logger *zap.Logger) *ShoppingListService {
	return &ShoppingListService{db: db, logger: logger}
}

// ListShoppingLists returns the user's lists, most recently updated first
func (s *ShoppingListService) ListShoppingLists(ctx context.Context, userID uuid.UUID) ([]model.ShoppingList, error) {
	lists := []model.ShoppingList{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	return lists, nil
}

func (s *ShoppingListService) CreateShoppingList(ctx context.Context, userID uuid.UUID, req *types.CreateShoppingListRequest) (*model.ShoppingList, error) {
	list := model.ShoppingList{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Items:  newItems(req.Items, "", ""),
	}
	if list.Name == "" {
		list.Name = model.DefaultShoppingListName
	}

	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return &list, nil
}

func (s *ShoppingListService) getShoppingList(ctx context.Context, db *gorm.DB, userID, id uuid.UUID) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := db.WithContext(ctx).First(&list, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShoppingListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}
	return &list, nil
}

// UpdateShoppingList replaces the name and/or the full item array.
func (s *ShoppingListService) UpdateShoppingList(ctx context.Context, userID, id uuid.UUID, req *types.UpdateShoppingListRequest) (*model.ShoppingList, error) {
	list, err := s.getShoppingList(ctx, s.db, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		list.Name = name
	}
	if req.Items != nil {
		items := make(model.ShoppingListItems, 0, len(*req.Items))
		for _, item := range *req.Items {
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			if item.Category == "" {
				item.Category = grocery.OtherCategory
			}
			items = append(items, item)
		}
		list.Items = items
	}

	if err := s.db.WithContext(ctx).Save(list).Error; err != nil {
		return nil, fmt.Errorf("failed to update shopping list: %w", err)
	}
	return list, nil
}

func (s *ShoppingListService) DeleteShoppingList(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.ShoppingList{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete shopping list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrShoppingListNotFound
	}
	return nil
}

// AddItems appends items to the user's most recently updated list, creating
// the default list when the user has none. Items whose name already appears
// on the list, compared case-insensitively after trimming, are skipped.
func (s *ShoppingListService) AddItems(ctx context.Context, userID uuid.UUID, req *types.AddItemsRequest) (*types.AddItemsResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	incoming := newItems(req.Items, req.SourceID, req.SourceType)
	result := &types.AddItemsResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list model.ShoppingList
		err := tx.Where("user_id = ?", userID).Order("updated_at DESC").First(&list).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			list = model.ShoppingList{UserID: userID, Name: model.DefaultShoppingListName, Items: model.ShoppingListItems{}}
			if err := tx.Create(&list).Error; err != nil {
				return fmt.Errorf("failed to create shopping list: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to find shopping list: %w", err)
		}

		seen := make(map[string]bool, len(list.Items)+len(incoming))
		for _, item := range list.Items {
			seen[itemKey(item.Item)] = true
		}
		for _, item := range incoming {
			name := itemKey(item.Item)
			if seen[name] {
				result.Skipped++
				continue
			}
			seen[name] = true
			list.Items = append(list.Items, item)
			result.Added++
		}

		if err := tx.Save(&list).Error; err != nil {
			return fmt.Errorf("failed to update shopping list: %w", err)
		}
		result.List = &list
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("items added to shopping list",
		zap.String("shopping_list_id", result.List.ID.String()),
		zap.Int("added", result.Added),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func itemKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func newItems(inputs []types.ShoppingListItemInput, sourceID, sourceType string) model.ShoppingListItems {
	items := make(model.ShoppingListItems, 0, len(inputs))
	for _, in := range inputs {
		category := in.Category
		if category == "" {
			category = grocery.OtherCategory
		}
		items = append(items, model.ShoppingListItem{
			ID:         uuid.New(),
			Item:       in.Item,
			Amount:     in.Amount,
			Category:   category,
			Checked:    in.Checked,
			SourceID:   sourceID,
			SourceType: sourceType,
		})
	}
	return items
}
