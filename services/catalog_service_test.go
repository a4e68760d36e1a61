package services_test

import (
	"context"
	"testing"

	"art-gallery-service/models"
	"art-gallery-service/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCatalogTestService(artRepo *mockArtRepo) *services.CatalogService {
	logger, _ := zap.NewDevelopment()
	return services.NewCatalogService(artRepo, logger)
}

func TestListPictures_CustomerSeesAvailableOnly(t *testing.T) {
	artRepo := &mockArtRepo{pictures: []models.ArtPicture{}}
	svc := newCatalogTestService(artRepo)

	_, svcErr := svc.ListPictures(context.Background(), false)
	assert.Nil(t, svcErr)
	assert.True(t, artRepo.gotAvailableOnly)

	_, svcErr = svc.ListPictures(context.Background(), true)
	assert.Nil(t, svcErr)
	assert.False(t, artRepo.gotAvailableOnly)
}

func TestGetPicture_HidesUnavailableFromCustomers(t *testing.T) {
	picture := testPicture("99.00")
	picture.IsAvailable = false
	svc := newCatalogTestService(&mockArtRepo{picture: picture})

	_, svcErr := svc.GetPicture(context.Background(), picture.ID, false)
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 404, svcErr.StatusCode)
	}

	got, svcErr := svc.GetPicture(context.Background(), picture.ID, true)
	assert.Nil(t, svcErr)
	assert.Equal(t, picture.ID, got.ID)
}

func TestGetPicture_NotFound(t *testing.T) {
	svc := newCatalogTestService(&mockArtRepo{findErr: gorm.ErrRecordNotFound})

	_, svcErr := svc.GetPicture(context.Background(), uuid.New(), true)
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 404, svcErr.StatusCode)
	}
}

func TestCreatePicture_RejectsNegativePrice(t *testing.T) {
	artRepo := &mockArtRepo{}
	svc := newCatalogTestService(artRepo)

	req := &services.ArtPictureRequest{Title: "Dusk", Price: decimal.RequireFromString("-1.00")}
	_, svcErr := svc.CreatePicture(context.Background(), req)
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 400, svcErr.StatusCode)
	}
	assert.Nil(t, artRepo.createdPicture)
}

func TestCreatePicture_DefaultsAvailable(t *testing.T) {
	artRepo := &mockArtRepo{}
	svc := newCatalogTestService(artRepo)

	req := &services.ArtPictureRequest{Title: "Dawn", Price: decimal.RequireFromString("150.00")}
	got, svcErr := svc.CreatePicture(context.Background(), req)
	assert.Nil(t, svcErr)
	assert.True(t, got.IsAvailable)
	assert.Equal(t, "150.00", got.Price.StringFixed(2))
}

func TestUpdatePicture_TogglesAvailability(t *testing.T) {
	picture := testPicture("40.00")
	artRepo := &mockArtRepo{picture: picture}
	svc := newCatalogTestService(artRepo)

	hidden := false
	req := &services.ArtPictureRequest{Title: picture.Title, Price: picture.Price, IsAvailable: &hidden}
	got, svcErr := svc.UpdatePicture(context.Background(), picture.ID, req)
	assert.Nil(t, svcErr)
	assert.False(t, got.IsAvailable)
	assert.NotNil(t, artRepo.updatedPicture)
}

func TestDeletePicture_NotFound(t *testing.T) {
	svc := newCatalogTestService(&mockArtRepo{findErr: gorm.ErrRecordNotFound})

	svcErr := svc.DeletePicture(context.Background(), uuid.New())
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 404, svcErr.StatusCode)
	}
}
