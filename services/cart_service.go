package services

import (
	"context"
	"errors"
	"net/http"

	"art-gallery-service/models"
	repositories "art-gallery-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService manages the single active cart per user. Every operation is
// scoped to the caller's own cart.
type CartService struct {
	cartRepo repositories.CartRepository
	artRepo  repositories.ArtPictureRepository
	logger   *zap.Logger
}

func NewCartService(cartRepo repositories.CartRepository, artRepo repositories.ArtPictureRepository, logger *zap.Logger) *CartService {
	return &CartService{cartRepo: cartRepo, artRepo: artRepo, logger: logger}
}

// GetOrCreateCart is idempotent: the cart is created lazily on first access.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, *ServiceError) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get or create cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch cart"}
	}
	decorateCart(cart)
	return cart, nil
}

// AddItem puts quantity units of a picture into the cart. Adding a picture
// that is already a line item increments its quantity instead of creating a
// second row.
func (s *CartService) AddItem(ctx context.Context, userID, pictureID uuid.UUID, quantity int) (*models.Cart, *ServiceError) {
	if quantity < 1 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Quantity must be positive"}
	}

	picture, err := s.artRepo.FindAvailableByID(ctx, pictureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Art picture not found or not available"}
		}
		s.logger.Error("Failed to fetch art picture", zap.String("id", pictureID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch art picture"}
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get or create cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch cart"}
	}

	existing, err := s.cartRepo.FindItemByPicture(ctx, cart.ID, picture.ID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := s.cartRepo.SaveItem(ctx, existing); err != nil {
			s.logger.Error("Failed to update cart item", zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			CartID:       cart.ID,
			ArtPictureID: picture.ID,
			Quantity:     quantity,
		}
		if err := s.cartRepo.CreateItem(ctx, item); err != nil {
			s.logger.Error("Failed to add cart item", zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
		}
	default:
		s.logger.Error("Failed to look up cart item", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}

	return s.GetOrCreateCart(ctx, userID)
}

// RemoveItem deletes a line item from the caller's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *ServiceError {
	cart, svcErr := s.GetOrCreateCart(ctx, userID)
	if svcErr != nil {
		return svcErr
	}

	item, err := s.cartRepo.FindItem(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Item not found in cart"}
		}
		s.logger.Error("Failed to look up cart item", zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}

	if err := s.cartRepo.DeleteItem(ctx, item); err != nil {
		s.logger.Error("Failed to remove cart item", zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}
	return nil
}

// UpdateItemQuantity overwrites a line item's quantity.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartItem, *ServiceError) {
	if quantity <= 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Quantity must be positive"}
	}

	cart, svcErr := s.GetOrCreateCart(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	item, err := s.cartRepo.FindItem(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Item not found in cart"}
		}
		s.logger.Error("Failed to look up cart item", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}

	item.Quantity = quantity
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		s.logger.Error("Failed to update cart item", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}

	item.SubtotalPrice = item.Subtotal()
	return item, nil
}

// Clear deletes every line item; clearing an already-empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) *ServiceError {
	cart, svcErr := s.GetOrCreateCart(ctx, userID)
	if svcErr != nil {
		return svcErr
	}

	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("cart_id", cart.ID.String()), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to clear cart"}
	}
	return nil
}

// decorateCart fills the derived totals for serialization.
func decorateCart(cart *models.Cart) {
	for i := range cart.Items {
		cart.Items[i].SubtotalPrice = cart.Items[i].Subtotal()
	}
	cart.TotalPrice = cart.ComputeTotal()
}
