package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"art-gallery-service/controllers"
	"art-gallery-service/middleware"
	"art-gallery-service/models"
	"art-gallery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var testSecret = []byte("controller-test-secret")

// ---- mock repository behind the real service ----

type mockArtRepo struct {
	pictures         []models.ArtPicture
	gotAvailableOnly bool
	picture          *models.ArtPicture
	findErr          error
	createErr        error
}

func (m *mockArtRepo) FindAll(_ context.Context, availableOnly bool) ([]models.ArtPicture, error) {
	m.gotAvailableOnly = availableOnly
	return m.pictures, nil
}
func (m *mockArtRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.ArtPicture, error) {
	return m.picture, m.findErr
}
func (m *mockArtRepo) FindAvailableByID(_ context.Context, _ uuid.UUID) (*models.ArtPicture, error) {
	return m.picture, m.findErr
}
func (m *mockArtRepo) Create(_ context.Context, _ *models.ArtPicture) error { return m.createErr }
func (m *mockArtRepo) Update(_ context.Context, _ *models.ArtPicture) error { return nil }
func (m *mockArtRepo) Delete(_ context.Context, _ uuid.UUID) error          { return nil }

// ---- helpers ----

func setupRouter(repo *mockArtRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	svc := services.NewCatalogService(repo, logger)
	c := controllers.NewArtPictureController(svc)

	r := gin.New()
	r.GET("/art-pictures", middleware.OptionalAuth(testSecret), c.List)
	r.GET("/art-pictures/:id", middleware.OptionalAuth(testSecret), c.Get)

	admin := r.Group("/art-pictures")
	admin.Use(middleware.AuthMiddleware(testSecret), middleware.RequireStaff())
	admin.POST("", c.Create)
	return r
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  uuid.New().String(),
		"username": "tester",
		"role":     role,
		"typ":      "access",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	assert.NoError(t, err)
	return token
}

// ---- tests ----

func TestList_AnonymousSeesAvailableOnly(t *testing.T) {
	repo := &mockArtRepo{pictures: []models.ArtPicture{}}
	r := setupRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/art-pictures", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.gotAvailableOnly)
}

func TestList_StaffSeesEverything(t *testing.T) {
	repo := &mockArtRepo{pictures: []models.ArtPicture{}}
	r := setupRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/art-pictures", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, repo.gotAvailableOnly)
}

func TestGet_InvalidID(t *testing.T) {
	r := setupRouter(&mockArtRepo{})

	req := httptest.NewRequest(http.MethodGet, "/art-pictures/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_RequiresAuth(t *testing.T) {
	r := setupRouter(&mockArtRepo{})

	body, _ := json.Marshal(map[string]interface{}{"title": "Dawn", "price": "10.00"})
	req := httptest.NewRequest(http.MethodPost, "/art-pictures", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreate_RejectsNonStaff(t *testing.T) {
	r := setupRouter(&mockArtRepo{})

	body, _ := json.Marshal(map[string]interface{}{"title": "Dawn", "price": "10.00"})
	req := httptest.NewRequest(http.MethodPost, "/art-pictures", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreate_StaffSucceeds(t *testing.T) {
	r := setupRouter(&mockArtRepo{})

	payload := services.ArtPictureRequest{Title: "Dawn", Price: decimal.RequireFromString("10.00")}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/art-pictures", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "art_picture")
}
