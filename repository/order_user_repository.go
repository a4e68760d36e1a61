package repositories

import (
	"context"

	"art-gallery-service/models"

	"gorm.io/gorm"
)

// OrderUserViewRepository reads the orders-joined-with-users SQL view.
// It is strictly read-only.
type OrderUserViewRepository interface {
	FindAll(ctx context.Context) ([]models.OrderUserView, error)
}

type GormOrderUserViewRepository struct {
	db *gorm.DB
}

func NewGormOrderUserViewRepository(db *gorm.DB) OrderUserViewRepository {
	return &GormOrderUserViewRepository{db: db}
}

func (r *GormOrderUserViewRepository) FindAll(ctx context.Context) ([]models.OrderUserView, error) {
	var rows []models.OrderUserView
	if err := r.db.WithContext(ctx).
		Order("username ASC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
