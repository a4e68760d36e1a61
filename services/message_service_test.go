package services_test

import (
	"context"
	"testing"

	"art-gallery-service/models"
	"art-gallery-service/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ---- mock message repository ----

type mockMessageRepo struct {
	visible        []models.Message
	listErr        error
	gotStaff       bool
	createdMessage *models.Message
	createErr      error
	message        *models.Message
	findErr        error
	savedMessage   *models.Message
	saveErr        error
}

func (m *mockMessageRepo) Create(_ context.Context, message *models.Message) error {
	m.createdMessage = message
	return m.createErr
}
func (m *mockMessageRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Message, error) {
	return m.message, m.findErr
}
func (m *mockMessageRepo) Save(_ context.Context, message *models.Message) error {
	m.savedMessage = message
	return m.saveErr
}
func (m *mockMessageRepo) ListVisibleTo(_ context.Context, _ uuid.UUID, staff bool) ([]models.Message, error) {
	m.gotStaff = staff
	return m.visible, m.listErr
}

// ---- helpers ----

func newMessageTestService(messageRepo *mockMessageRepo, userRepo *mockUserRepo) *services.MessageService {
	logger, _ := zap.NewDevelopment()
	return services.NewMessageService(messageRepo, userRepo, logger)
}

// ---- tests ----

func TestListMessages_DecoratesUsernames(t *testing.T) {
	admin := models.User{ID: uuid.New(), Username: "admin"}
	recipient := models.User{ID: uuid.New(), Username: "alice"}
	messageRepo := &mockMessageRepo{visible: []models.Message{{
		SenderID:    admin.ID,
		RecipientID: &recipient.ID,
		MessageType: models.MessageTypeAdminToUser,
		Sender:      admin,
		Recipient:   &recipient,
	}}}
	svc := newMessageTestService(messageRepo, &mockUserRepo{})

	messages, svcErr := svc.ListMessages(context.Background(), recipient.ID, false)
	assert.Nil(t, svcErr)
	assert.False(t, messageRepo.gotStaff)
	if assert.Len(t, messages, 1) {
		assert.Equal(t, "admin", messages[0].SenderUsername)
		assert.Equal(t, "alice", messages[0].RecipientUsername)
	}
}

func TestSendPublicMessage_RequiresStaff(t *testing.T) {
	messageRepo := &mockMessageRepo{}
	svc := newMessageTestService(messageRepo, &mockUserRepo{})

	_, svcErr := svc.SendPublicMessage(context.Background(), uuid.New(), false, "Sale", "Everything 10% off")
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 403, svcErr.StatusCode)
	}
	assert.Nil(t, messageRepo.createdMessage)
}

func TestSendPublicMessage_CreatesBroadcast(t *testing.T) {
	messageRepo := &mockMessageRepo{}
	svc := newMessageTestService(messageRepo, &mockUserRepo{})

	message, svcErr := svc.SendPublicMessage(context.Background(), uuid.New(), true, "Sale", "Everything 10% off")
	assert.Nil(t, svcErr)
	assert.Equal(t, models.MessageTypeAdminToAll, message.MessageType)
	assert.Nil(t, message.RecipientID)
}

func TestSendUserMessage_RecipientNotFound(t *testing.T) {
	svc := newMessageTestService(&mockMessageRepo{}, &mockUserRepo{findErr: gorm.ErrRecordNotFound})

	_, svcErr := svc.SendUserMessage(context.Background(), uuid.New(), true, uuid.New(), "Hi", "Your order shipped")
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 404, svcErr.StatusCode)
	}
}

func TestSendUserMessage_Targeted(t *testing.T) {
	recipient := &models.User{ID: uuid.New(), Username: "alice"}
	messageRepo := &mockMessageRepo{}
	svc := newMessageTestService(messageRepo, &mockUserRepo{user: recipient})

	message, svcErr := svc.SendUserMessage(context.Background(), uuid.New(), true, recipient.ID, "Hi", "Your order shipped")
	assert.Nil(t, svcErr)
	assert.Equal(t, models.MessageTypeAdminToUser, message.MessageType)
	if assert.NotNil(t, message.RecipientID) {
		assert.Equal(t, recipient.ID, *message.RecipientID)
	}
}

func TestContactAdmin_RoutesToFirstAdmin(t *testing.T) {
	sender := &models.User{ID: uuid.New(), Username: "bob"}
	admin := &models.User{ID: uuid.New(), Username: "admin", Role: models.RoleAdmin}
	messageRepo := &mockMessageRepo{}
	svc := newMessageTestService(messageRepo, &mockUserRepo{user: sender, firstStaff: admin})

	message, svcErr := svc.ContactAdmin(context.Background(), sender.ID, false, "Where is my order?")
	assert.Nil(t, svcErr)
	assert.Equal(t, models.MessageTypeUserToAdmin, message.MessageType)
	assert.Equal(t, "Message from bob", message.Subject)
	if assert.NotNil(t, message.RecipientID) {
		assert.Equal(t, admin.ID, *message.RecipientID)
	}
}

func TestContactAdmin_NoAdminAvailable(t *testing.T) {
	sender := &models.User{ID: uuid.New(), Username: "bob"}
	svc := newMessageTestService(&mockMessageRepo{}, &mockUserRepo{user: sender, firstStaffErr: gorm.ErrRecordNotFound})

	_, svcErr := svc.ContactAdmin(context.Background(), sender.ID, false, "Hello?")
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 404, svcErr.StatusCode)
	}
}

func TestContactAdmin_StaffRejected(t *testing.T) {
	svc := newMessageTestService(&mockMessageRepo{}, &mockUserRepo{})

	_, svcErr := svc.ContactAdmin(context.Background(), uuid.New(), true, "test")
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 400, svcErr.StatusCode)
	}
}

func TestMarkAsRead_RecipientOnly(t *testing.T) {
	recipientID := uuid.New()
	message := &models.Message{ID: uuid.New(), RecipientID: &recipientID, MessageType: models.MessageTypeAdminToUser}
	messageRepo := &mockMessageRepo{message: message}
	svc := newMessageTestService(messageRepo, &mockUserRepo{})

	_, svcErr := svc.MarkAsRead(context.Background(), uuid.New(), false, message.ID)
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, 403, svcErr.StatusCode)
	}
	assert.Nil(t, messageRepo.savedMessage)

	got, svcErr := svc.MarkAsRead(context.Background(), recipientID, false, message.ID)
	assert.Nil(t, svcErr)
	assert.True(t, got.IsRead)
	assert.NotNil(t, messageRepo.savedMessage)
}

func TestMarkAsRead_StaffOverride(t *testing.T) {
	message := &models.Message{ID: uuid.New(), MessageType: models.MessageTypeUserToAdmin}
	messageRepo := &mockMessageRepo{message: message}
	svc := newMessageTestService(messageRepo, &mockUserRepo{})

	got, svcErr := svc.MarkAsRead(context.Background(), uuid.New(), true, message.ID)
	assert.Nil(t, svcErr)
	assert.True(t, got.IsRead)
}
