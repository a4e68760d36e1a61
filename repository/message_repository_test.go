package repositories_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"art-gallery-service/models"
	repositories "art-gallery-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const listVisibleUserSQL = `SELECT * FROM "messages" WHERE (recipient_id = $1 AND message_type = $2) OR message_type = $3 OR (sender_id = $4 AND message_type = $5) ORDER BY created_at DESC`

const listVisibleStaffSQL = `SELECT * FROM "messages" WHERE sender_id = $1 OR message_type = $2 OR message_type = $3 ORDER BY created_at DESC`

func messageRows(m *models.Message) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "sender_id", "recipient_id", "subject", "content", "message_type", "is_read", "created_at"}).
		AddRow(m.ID, m.SenderID, m.RecipientID, m.Subject, m.Content, m.MessageType, m.IsRead, time.Now())
}

func TestListVisibleTo_UserScopesToOwnMail(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGormMessageRepository(gormDB)

	userID := uuid.New()
	senderID := uuid.New()
	broadcast := &models.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		Subject:     "Sale",
		Content:     "Everything 10% off",
		MessageType: models.MessageTypeAdminToAll,
	}

	// The predicate must only admit broadcasts, mail addressed to the caller,
	// and the caller's own messages to admin. A stranger's user_to_admin
	// message matches none of the three branches.
	mock.ExpectQuery(regexp.QuoteMeta(listVisibleUserSQL)).
		WithArgs(
			userID, models.MessageTypeAdminToUser,
			models.MessageTypeAdminToAll,
			userID, models.MessageTypeUserToAdmin,
		).
		WillReturnRows(messageRows(broadcast))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(senderID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(senderID, "admin"))

	messages, err := repo.ListVisibleTo(context.Background(), userID, false)
	assert.NoError(t, err)
	if assert.Len(t, messages, 1) {
		assert.Equal(t, models.MessageTypeAdminToAll, messages[0].MessageType)
		assert.Equal(t, "admin", messages[0].Sender.Username)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVisibleTo_StaffSeesAllInboundMail(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGormMessageRepository(gormDB)

	staffID := uuid.New()
	senderID := uuid.New()
	inbound := &models.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		Subject:     "Message from bob",
		Content:     "Where is my order?",
		MessageType: models.MessageTypeUserToAdmin,
	}

	// Staff visibility is by message type, not recipient: every broadcast and
	// every user_to_admin message qualifies, plus anything the caller sent.
	mock.ExpectQuery(regexp.QuoteMeta(listVisibleStaffSQL)).
		WithArgs(staffID, models.MessageTypeAdminToAll, models.MessageTypeUserToAdmin).
		WillReturnRows(messageRows(inbound))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(senderID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(senderID, "bob"))

	messages, err := repo.ListVisibleTo(context.Background(), staffID, true)
	assert.NoError(t, err)
	if assert.Len(t, messages, 1) {
		assert.Equal(t, models.MessageTypeUserToAdmin, messages[0].MessageType)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVisibleTo_EmptyMailbox(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewGormMessageRepository(gormDB)

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(listVisibleUserSQL)).
		WithArgs(
			userID, models.MessageTypeAdminToUser,
			models.MessageTypeAdminToAll,
			userID, models.MessageTypeUserToAdmin,
		).
		WillReturnRows(sqlmock.NewRows([]string{}))

	messages, err := repo.ListVisibleTo(context.Background(), userID, false)
	assert.NoError(t, err)
	assert.Empty(t, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
