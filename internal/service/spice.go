package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/model"
)

type SpiceService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSpiceService(db *gorm.DB, logger *zap.Logger) *SpiceService {
	return &SpiceService{db: db, logger: logger}
}

// ListSpices returns the spice catalogue ordered by category. It never
// fails: an unreachable or empty table yields the built-in defaults.
func (s *SpiceService) ListSpices(ctx context.Context) []model.Spice {
	var spices []model.Spice
	if err := s.db.WithContext(ctx).Order("category ASC").Order("id ASC").Find(&spices).Error; err != nil {
		s.logger.Warn("falling back to default spices", zap.Error(err))
		return model.DefaultSpices()
	}
	if len(spices) == 0 {
		return model.DefaultSpices()
	}
	return spices
}
