package services_test

import (
	"context"
	"testing"

	"art-gallery-service/middleware"
	"art-gallery-service/models"
	"art-gallery-service/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ---- mock user repository ----

type mockUserRepo struct {
	createdUser   *models.User
	createErr     error
	user          *models.User
	findErr       error
	byUsername    *models.User
	byUsernameErr error
	firstStaff    *models.User
	firstStaffErr error
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	m.createdUser = user
	return m.createErr
}
func (m *mockUserRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	return m.user, m.findErr
}
func (m *mockUserRepo) FindByUsername(_ context.Context, _ string) (*models.User, error) {
	return m.byUsername, m.byUsernameErr
}
func (m *mockUserRepo) FindFirstStaff(_ context.Context) (*models.User, error) {
	return m.firstStaff, m.firstStaffErr
}

// ---- helpers ----

var testSecret = []byte("test-secret")

func newAuthTestService(userRepo *mockUserRepo) *services.AuthService {
	logger, _ := zap.NewDevelopment()
	return services.NewAuthService(userRepo, testSecret, logger)
}

func hashedUser(username, password, role string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
}

// ---- tests ----

func TestRegister_DuplicateUsername(t *testing.T) {
	userRepo := &mockUserRepo{byUsername: hashedUser("alice", "pw12345678", models.RoleUser)}
	svc := newAuthTestService(userRepo)

	req := &services.RegisterRequest{Username: "alice", Password: "pw12345678"}
	_, svcErr := svc.Register(context.Background(), req)
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 400, svcErr.StatusCode)
	}
	assert.Nil(t, userRepo.createdUser)
}

func TestRegister_HashesPassword(t *testing.T) {
	userRepo := &mockUserRepo{byUsernameErr: gorm.ErrRecordNotFound}
	svc := newAuthTestService(userRepo)

	req := &services.RegisterRequest{Username: "bob", Password: "supersecret"}
	user, svcErr := svc.Register(context.Background(), req)
	assert.Nil(t, svcErr)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestLogin_Success(t *testing.T) {
	user := hashedUser("carol", "correct-horse", models.RoleAdmin)
	svc := newAuthTestService(&mockUserRepo{byUsername: user})

	pair, svcErr := svc.Login(context.Background(), "carol", "correct-horse")
	assert.Nil(t, svcErr)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	claims, err := middleware.ParseToken(testSecret, pair.Access, "access")
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	user := hashedUser("dave", "right-password", models.RoleUser)
	svc := newAuthTestService(&mockUserRepo{byUsername: user})

	_, svcErr := svc.Login(context.Background(), "dave", "wrong-password")
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 401, svcErr.StatusCode)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newAuthTestService(&mockUserRepo{byUsernameErr: gorm.ErrRecordNotFound})

	_, svcErr := svc.Login(context.Background(), "nobody", "whatever")
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 401, svcErr.StatusCode)
	}
}

func TestRefresh_Success(t *testing.T) {
	user := hashedUser("erin", "pw12345678", models.RoleUser)
	svc := newAuthTestService(&mockUserRepo{byUsername: user, user: user})

	pair, svcErr := svc.Login(context.Background(), "erin", "pw12345678")
	assert.Nil(t, svcErr)

	fresh, svcErr := svc.Refresh(context.Background(), pair.Refresh)
	assert.Nil(t, svcErr)
	assert.NotEmpty(t, fresh.Access)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	user := hashedUser("frank", "pw12345678", models.RoleUser)
	svc := newAuthTestService(&mockUserRepo{byUsername: user, user: user})

	pair, svcErr := svc.Login(context.Background(), "frank", "pw12345678")
	assert.Nil(t, svcErr)

	_, svcErr = svc.Refresh(context.Background(), pair.Access)
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 401, svcErr.StatusCode)
	}
}
