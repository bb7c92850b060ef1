package services

import (
	"context"
	"net/http"

	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WishlistService defines the interface for wishlist business logic.
type WishlistService interface {
	Add(ctx context.Context, userID string, req *models.AddWishlistRequest) (*models.WishlistItem, *ServiceError)
	Remove(ctx context.Context, userID, productID string) *ServiceError
	List(ctx context.Context, userID string) ([]models.WishlistItem, *ServiceError)
}

type wishlistServiceImpl struct {
	repo   repository.WishlistRepository
	logger *zap.Logger
}

func NewWishlistService(repo repository.WishlistRepository, logger *zap.Logger) WishlistService {
	return &wishlistServiceImpl{repo: repo, logger: logger}
}

// Add saves a product for the user. Re-adding an already saved product is
// idempotent.
func (s *wishlistServiceImpl) Add(ctx context.Context, userID string, req *models.AddWishlistRequest) (*models.WishlistItem, *ServiceError) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "invalid user id"}
	}

	item := &models.WishlistItem{
		UserID:    uid,
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	}
	if err := s.repo.Add(ctx, item); err != nil {
		s.logger.Error("Failed to add wishlist item", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to save item"}
	}
	return item, nil
}

func (s *wishlistServiceImpl) Remove(ctx context.Context, userID, productID string) *ServiceError {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "invalid user id"}
	}

	if err := s.repo.Remove(ctx, uid, productID); err != nil {
		s.logger.Error("Failed to remove wishlist item", zap.String("user_id", userID), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to remove item"}
	}
	return nil
}

func (s *wishlistServiceImpl) List(ctx context.Context, userID string) ([]models.WishlistItem, *ServiceError) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "invalid user id"}
	}

	items, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		s.logger.Error("Failed to list wishlist", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to load wishlist"}
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	return items, nil
}
