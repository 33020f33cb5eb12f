package dao

import (
	"context"

	"beedu/beedu/sources/psql"
	"beedu/beedu/sources/psql/models"

	"github.com/google/uuid"
)

// DefaultHistoryLimit bounds history replay for all callers.
const DefaultHistoryLimit = 100

type ChatDAO struct {
	db *psql.Database
}

func NewChatDAO(db *psql.Database) *ChatDAO {
	return &ChatDAO{db: db}
}

// InsertChat appends one exchange with a server-assigned timestamp. Answer
// and errMsg may both be empty; neither is validated here.
func (dao *ChatDAO) InsertChat(ctx context.Context, userID uuid.UUID, question, answer, errMsg string) (*models.ChatRecord, error) {
	db, err := dao.db.Get(ctx)
	if err != nil {
		return nil, err
	}
	rec := models.ChatRecord{
		UserID:   userID,
		Question: question,
		Answer:   answer,
		Error:    errMsg,
	}
	if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListChatsByUser returns the caller's exchanges ascending by creation time,
// truncated to limit (DefaultHistoryLimit when limit <= 0). Records of other
// users are never visible through this query.
func (dao *ChatDAO) ListChatsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatRecord, error) {
	db, err := dao.db.Get(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records := make([]models.ChatRecord, 0, limit)
	err = db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
