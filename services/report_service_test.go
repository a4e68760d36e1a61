package services_test

import (
	"context"
	"errors"
	"testing"

	"art-gallery-service/models"
	"art-gallery-service/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockViewRepo struct {
	rows []models.OrderUserView
	err  error
}

func (m *mockViewRepo) FindAll(_ context.Context) ([]models.OrderUserView, error) {
	return m.rows, m.err
}

func newReportTestService(viewRepo *mockViewRepo) *services.ReportService {
	logger, _ := zap.NewDevelopment()
	return services.NewReportService(viewRepo, logger)
}

func TestGroupedByUser_BucketsSortedRows(t *testing.T) {
	aliceID := uuid.New()
	bobID := uuid.New()
	rows := []models.OrderUserView{
		{ID: uuid.New(), UserID: aliceID, Username: "alice", DisplayName: "Alice A"},
		{ID: uuid.New(), UserID: aliceID, Username: "alice", DisplayName: "Alice A"},
		{ID: uuid.New(), UserID: bobID, Username: "bob", DisplayName: "bob"},
	}
	svc := newReportTestService(&mockViewRepo{rows: rows})

	groups, svcErr := svc.GroupedByUser(context.Background())
	assert.Nil(t, svcErr)
	if assert.Len(t, groups, 2) {
		assert.Equal(t, "alice", groups[0].Username)
		assert.Equal(t, 2, groups[0].OrderCount)
		assert.Len(t, groups[0].Orders, 2)
		assert.Equal(t, "bob", groups[1].Username)
		assert.Equal(t, 1, groups[1].OrderCount)
	}
}

func TestGroupedByUser_Empty(t *testing.T) {
	svc := newReportTestService(&mockViewRepo{})

	groups, svcErr := svc.GroupedByUser(context.Background())
	assert.Nil(t, svcErr)
	assert.Empty(t, groups)
}

func TestListOrders_RepositoryFailure(t *testing.T) {
	svc := newReportTestService(&mockViewRepo{err: errors.New("view missing")})

	_, svcErr := svc.ListOrders(context.Background())
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 500, svcErr.StatusCode)
	}
}
