package repository

import (
	"context"
	"time"

	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"

	"github.com/google/uuid"
)

const createNotificationJobQuery = `
INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at, created_at)
VALUES ($1, $2, $3, $4, 'queued', $5, now())
`

const updateNotificationJobStatusQuery = `
UPDATE notification_jobs SET status = $2, last_error = $3 WHERE id = $1
`

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, createNotificationJobQuery, uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, tx db.DBTX, jobID uuid.UUID, status string, lastError *string) error {
	_, err := tx.Exec(ctx, updateNotificationJobStatusQuery, jobID, status, lastError)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}

	return nil
}
