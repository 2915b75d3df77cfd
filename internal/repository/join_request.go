package repository

import (
	"context"
	"errors"

	"commons/internal/models"

	"gorm.io/gorm"
)

func (r *groupRepository) CreateJoinRequest(ctx context.Context, req *models.GroupJoinRequest) error {
	ctx, done := track(ctx, "CreateJoinRequest", "create", "group_join_requests")
	defer done()
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return r.internal(ctx, err, "create_join_request")
	}
	r.log.LogCreate(ctx, map[string]interface{}{"group_id": req.GroupID, "user_id": req.UserID, "join_request_id": req.ID})
	return nil
}

func (r *groupRepository) GetJoinRequest(ctx context.Context, groupID, requestID uint) (*models.GroupJoinRequest, error) {
	ctx, done := track(ctx, "GetJoinRequest", "read", "group_join_requests")
	defer done()
	var req models.GroupJoinRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND group_id = ?", requestID, groupID).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Join request", requestID)
	}
	if err != nil {
		return nil, r.internal(ctx, err, "get_join_request")
	}
	return &req, nil
}

// GetPendingJoinRequest returns nil without error when no request is pending.
func (r *groupRepository) GetPendingJoinRequest(ctx context.Context, groupID, userID uint) (*models.GroupJoinRequest, error) {
	ctx, done := track(ctx, "GetPendingJoinRequest", "read", "group_join_requests")
	defer done()
	var req models.GroupJoinRequest
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, models.JoinRequestStatusPending).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.internal(ctx, err, "get_pending_join_request")
	}
	return &req, nil
}

func (r *groupRepository) ListPendingJoinRequests(ctx context.Context, groupID uint) ([]models.GroupJoinRequest, error) {
	ctx, done := track(ctx, "ListPendingJoinRequests", "list", "group_join_requests")
	defer done()
	var reqs []models.GroupJoinRequest
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, models.JoinRequestStatusPending).
		Order("created_at ASC").Order("id ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, r.internal(ctx, err, "list_join_requests")
	}
	return reqs, nil
}

func (r *groupRepository) SaveJoinRequest(ctx context.Context, req *models.GroupJoinRequest) error {
	ctx, done := track(ctx, "SaveJoinRequest", "update", "group_join_requests")
	defer done()
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return r.internal(ctx, err, "save_join_request")
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"join_request_id": req.ID, "status": req.Status})
	return nil
}
