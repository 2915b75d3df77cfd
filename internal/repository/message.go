package repository

import (
	"context"
	"errors"

	"commons/internal/models"

	"gorm.io/gorm"
)

// LastMessage returns the highest-seq message, or nil for an empty channel.
func (r *groupRepository) LastMessage(ctx context.Context, groupID uint) (*models.GroupMessage, error) {
	ctx, done := track(ctx, "LastMessage", "read", "group_messages")
	defer done()
	var msg models.GroupMessage
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("seq DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.internal(ctx, err, "last_message")
	}
	return &msg, nil
}

func (r *groupRepository) CreateMessage(ctx context.Context, msg *models.GroupMessage) error {
	ctx, done := track(ctx, "CreateMessage", "create", "group_messages")
	defer done()
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return r.internal(ctx, err, "create_message")
	}
	return nil
}

// ListMessagesAfter returns up to limit messages with seq > afterSeq in seq order.
func (r *groupRepository) ListMessagesAfter(ctx context.Context, groupID uint, afterSeq uint64, limit int) ([]models.GroupMessage, error) {
	ctx, done := track(ctx, "ListMessagesAfter", "list", "group_messages")
	defer done()
	var msgs []models.GroupMessage
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND seq > ?", groupID, afterSeq).
		Order("seq ASC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, r.internal(ctx, err, "list_messages")
	}
	return msgs, nil
}
