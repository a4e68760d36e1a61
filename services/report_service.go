package services

import (
	"context"
	"net/http"

	"art-gallery-service/models"
	repositories "art-gallery-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserOrdersGroup buckets a user's orders with per-user metadata.
type UserOrdersGroup struct {
	UserID      uuid.UUID              `json:"user_id"`
	Username    string                 `json:"username"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"display_name"`
	OrderCount  int                    `json:"order_count"`
	Orders      []models.OrderUserView `json:"orders"`
}

// ReportService serves the staff-only order/user projection. It is a derived,
// non-authoritative read model.
type ReportService struct {
	viewRepo repositories.OrderUserViewRepository
	logger   *zap.Logger
}

func NewReportService(viewRepo repositories.OrderUserViewRepository, logger *zap.Logger) *ReportService {
	return &ReportService{viewRepo: viewRepo, logger: logger}
}

func (s *ReportService) ListOrders(ctx context.Context) ([]models.OrderUserView, *ServiceError) {
	rows, err := s.viewRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to read order/user view", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch report"}
	}
	return rows, nil
}

// GroupedByUser buckets the view rows by username. Rows arrive sorted by
// username, so groups are built in a single pass.
func (s *ReportService) GroupedByUser(ctx context.Context) ([]UserOrdersGroup, *ServiceError) {
	rows, svcErr := s.ListOrders(ctx)
	if svcErr != nil {
		return nil, svcErr
	}

	groups := make([]UserOrdersGroup, 0)
	for _, row := range rows {
		if len(groups) == 0 || groups[len(groups)-1].Username != row.Username {
			groups = append(groups, UserOrdersGroup{
				UserID:      row.UserID,
				Username:    row.Username,
				Email:       row.Email,
				DisplayName: row.DisplayName,
			})
		}
		g := &groups[len(groups)-1]
		g.Orders = append(g.Orders, row)
		g.OrderCount = len(g.Orders)
	}
	return groups, nil
}
