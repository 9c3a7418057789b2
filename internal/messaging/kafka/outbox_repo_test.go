package kafka_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/uratMeds/LMS-API/internal/messaging/kafka"
	"github.com/uratMeds/LMS-API/internal/shared/connection"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupOutboxTest(t *testing.T) (*gorm.DB, kafka.OutboxRepository) {
	t.Helper()

	db, err := connection.OpenSQLite(filepath.Join(t.TempDir(), "outbox_test.db"))
	assert.NoError(t, err)

	err = db.AutoMigrate(&kafka.OutboxEvent{})
	assert.NoError(t, err)

	return db, kafka.NewOutboxRepository(db)
}

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "leave_request",
		AggregateID:   "1",
		EventType:     "leave.approved",
		Topic:         "lms.leave.lifecycle.v1",
		Payload:       []byte(`{"leave_id":1}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_CreateAndListPending(t *testing.T) {
	ctx := context.Background()
	_, repo := setupOutboxTest(t)

	event := pendingEvent()
	assert.NoError(t, repo.Create(ctx, event))

	pending, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	if assert.Len(t, pending, 1) {
		assert.Equal(t, event.ID, pending[0].ID)
		assert.Equal(t, kafka.OutboxStatusPending, pending[0].Status)
	}
}

func TestOutboxRepository_WithTxRollbackDiscardsStagedEvent(t *testing.T) {
	ctx := context.Background()
	db, repo := setupOutboxTest(t)

	sqlDB, err := db.DB()
	assert.NoError(t, err)

	tx, err := sqlDB.BeginTx(ctx, nil)
	assert.NoError(t, err)

	event := pendingEvent()
	assert.NoError(t, repo.WithTx(tx).Create(ctx, event))
	assert.NoError(t, tx.Rollback())

	pending, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	ctx := context.Background()
	db, repo := setupOutboxTest(t)

	event := pendingEvent()
	assert.NoError(t, repo.Create(ctx, event))
	assert.NoError(t, repo.MarkSent(ctx, event.ID))

	var got kafka.OutboxEvent
	assert.NoError(t, db.First(&got, "id = ?", event.ID).Error)
	assert.Equal(t, kafka.OutboxStatusSent, got.Status)
	assert.NotNil(t, got.ProcessedAt)

	pending, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()
	db, repo := setupOutboxTest(t)

	event := pendingEvent()
	assert.NoError(t, repo.Create(ctx, event))
	assert.NoError(t, repo.MarkFailed(ctx, event.ID, "broker unreachable"))

	var got kafka.OutboxEvent
	assert.NoError(t, db.First(&got, "id = ?", event.ID).Error)
	assert.Equal(t, kafka.OutboxStatusFailed, got.Status)
	assert.Equal(t, 1, got.RetryCount)
	assert.Equal(t, "broker unreachable", got.ErrorMessage)
	if assert.NotNil(t, got.NextRetryAt) {
		assert.True(t, got.NextRetryAt.After(time.Now().UTC()))
	}

	// A failed event behind its retry window is not picked up yet.
	pending, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxRepository_MarkFailedTruncatesReason(t *testing.T) {
	ctx := context.Background()
	db, repo := setupOutboxTest(t)

	event := pendingEvent()
	assert.NoError(t, repo.Create(ctx, event))
	assert.NoError(t, repo.MarkFailed(ctx, event.ID, strings.Repeat("x", 600)))

	var got kafka.OutboxEvent
	assert.NoError(t, db.First(&got, "id = ?", event.ID).Error)
	assert.Len(t, got.ErrorMessage, 500)
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, kafka.ValidateOutboxEvent(pendingEvent()))
	})

	t.Run("negative missing id", func(t *testing.T) {
		event := pendingEvent()
		event.ID = ""
		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("negative missing topic", func(t *testing.T) {
		event := pendingEvent()
		event.Topic = ""
		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("negative empty payload", func(t *testing.T) {
		event := pendingEvent()
		event.Payload = nil
		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("negative unknown status", func(t *testing.T) {
		event := pendingEvent()
		event.Status = "queued"
		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})
}
