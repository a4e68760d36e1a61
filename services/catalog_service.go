package services

import (
	"context"
	"errors"
	"net/http"

	"art-gallery-service/models"
	repositories "art-gallery-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ArtPictureRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url"`
	IsAvailable *bool           `json:"is_available"`
}

// CatalogService manages the sellable art pictures. Writes are staff-only,
// enforced at the route level; availability scoping happens here.
type CatalogService struct {
	artRepo repositories.ArtPictureRepository
	logger  *zap.Logger
}

func NewCatalogService(artRepo repositories.ArtPictureRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{artRepo: artRepo, logger: logger}
}

// ListPictures returns the catalog. Non-staff callers only see available
// pictures.
func (s *CatalogService) ListPictures(ctx context.Context, staff bool) ([]models.ArtPicture, *ServiceError) {
	pictures, err := s.artRepo.FindAll(ctx, !staff)
	if err != nil {
		s.logger.Error("Failed to list art pictures", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch art pictures"}
	}
	return pictures, nil
}

func (s *CatalogService) GetPicture(ctx context.Context, id uuid.UUID, staff bool) (*models.ArtPicture, *ServiceError) {
	picture, err := s.artRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Art picture not found"}
		}
		s.logger.Error("Failed to fetch art picture", zap.String("id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch art picture"}
	}

	// Unavailable pictures are invisible to non-staff callers.
	if !picture.IsAvailable && !staff {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Art picture not found"}
	}
	return picture, nil
}

func (s *CatalogService) CreatePicture(ctx context.Context, req *ArtPictureRequest) (*models.ArtPicture, *ServiceError) {
	if req.Price.IsNegative() {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Price must not be negative"}
	}

	picture := &models.ArtPicture{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		picture.IsAvailable = *req.IsAvailable
	}

	if err := s.artRepo.Create(ctx, picture); err != nil {
		s.logger.Error("Failed to create art picture", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create art picture"}
	}
	return picture, nil
}

func (s *CatalogService) UpdatePicture(ctx context.Context, id uuid.UUID, req *ArtPictureRequest) (*models.ArtPicture, *ServiceError) {
	if req.Price.IsNegative() {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Price must not be negative"}
	}

	picture, err := s.artRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Art picture not found"}
		}
		s.logger.Error("Failed to fetch art picture", zap.String("id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch art picture"}
	}

	picture.Title = req.Title
	picture.Description = req.Description
	picture.Price = req.Price
	picture.ImageURL = req.ImageURL
	if req.IsAvailable != nil {
		picture.IsAvailable = *req.IsAvailable
	}

	if err := s.artRepo.Update(ctx, picture); err != nil {
		s.logger.Error("Failed to update art picture", zap.String("id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update art picture"}
	}
	return picture, nil
}

func (s *CatalogService) DeletePicture(ctx context.Context, id uuid.UUID) *ServiceError {
	if _, err := s.artRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Art picture not found"}
		}
		s.logger.Error("Failed to fetch art picture", zap.String("id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch art picture"}
	}

	if err := s.artRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete art picture", zap.String("id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to delete art picture"}
	}
	return nil
}
