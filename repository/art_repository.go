package repositories

import (
	"context"

	"art-gallery-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArtPictureRepository defines data access for catalog items.
type ArtPictureRepository interface {
	FindAll(ctx context.Context, availableOnly bool) ([]models.ArtPicture, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ArtPicture, error)
	FindAvailableByID(ctx context.Context, id uuid.UUID) (*models.ArtPicture, error)
	Create(ctx context.Context, picture *models.ArtPicture) error
	Update(ctx context.Context, picture *models.ArtPicture) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormArtPictureRepository struct {
	db *gorm.DB
}

func NewGormArtPictureRepository(db *gorm.DB) ArtPictureRepository {
	return &GormArtPictureRepository{db: db}
}

func (r *GormArtPictureRepository) FindAll(ctx context.Context, availableOnly bool) ([]models.ArtPicture, error) {
	var pictures []models.ArtPicture
	query := r.db.WithContext(ctx).Model(&models.ArtPicture{})
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	if err := query.Order("created_at DESC").Find(&pictures).Error; err != nil {
		return nil, err
	}
	return pictures, nil
}

func (r *GormArtPictureRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ArtPicture, error) {
	var picture models.ArtPicture
	if err := r.db.WithContext(ctx).First(&picture, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &picture, nil
}

func (r *GormArtPictureRepository) FindAvailableByID(ctx context.Context, id uuid.UUID) (*models.ArtPicture, error) {
	var picture models.ArtPicture
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_available = ?", id, true).
		First(&picture).Error; err != nil {
		return nil, err
	}
	return &picture, nil
}

func (r *GormArtPictureRepository) Create(ctx context.Context, picture *models.ArtPicture) error {
	return r.db.WithContext(ctx).Create(picture).Error
}

func (r *GormArtPictureRepository) Update(ctx context.Context, picture *models.ArtPicture) error {
	return r.db.WithContext(ctx).Save(picture).Error
}

func (r *GormArtPictureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ArtPicture{}, "id = ?", id).Error
}
