package repository

import (
	"context"
	"errors"

	"commons/internal/models"

	"gorm.io/gorm"
)

// GetMembership returns nil without error when the user holds no row.
func (r *groupRepository) GetMembership(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error) {
	ctx, done := track(ctx, "GetMembership", "read", "group_memberships")
	defer done()
	var m models.GroupMembership
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.internal(ctx, err, "get_membership")
	}
	return &m, nil
}

// ListMemberships returns stored rows ordered by join time.
func (r *groupRepository) ListMemberships(ctx context.Context, groupID uint) ([]models.GroupMembership, error) {
	ctx, done := track(ctx, "ListMemberships", "list", "group_memberships")
	defer done()
	var rows []models.GroupMembership
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at ASC").Order("user_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.internal(ctx, err, "list_memberships")
	}
	return rows, nil
}

func (r *groupRepository) CreateMembership(ctx context.Context, m *models.GroupMembership) error {
	ctx, done := track(ctx, "CreateMembership", "create", "group_memberships")
	defer done()
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewAlreadyMemberError()
		}
		return r.internal(ctx, err, "create_membership")
	}
	r.log.LogCreate(ctx, map[string]interface{}{"group_id": m.GroupID, "user_id": m.UserID, "role": m.Role})
	return nil
}

func (r *groupRepository) UpdateMembershipRole(ctx context.Context, groupID, userID uint, role models.GroupRole) error {
	ctx, done := track(ctx, "UpdateMembershipRole", "update", "group_memberships")
	defer done()
	res := r.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role)
	if res.Error != nil {
		return r.internal(ctx, res.Error, "update_membership_role")
	}
	if res.RowsAffected == 0 {
		return models.NewTargetNotMemberError(userID)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"group_id": groupID, "user_id": userID, "role": role})
	return nil
}

func (r *groupRepository) DeleteMembership(ctx context.Context, groupID, userID uint) error {
	ctx, done := track(ctx, "DeleteMembership", "delete", "group_memberships")
	defer done()
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMembership{})
	if res.Error != nil {
		return r.internal(ctx, res.Error, "delete_membership")
	}
	if res.RowsAffected == 0 {
		return models.NewNotAMemberError()
	}
	r.log.LogDelete(ctx, map[string]interface{}{"group_id": groupID, "user_id": userID})
	return nil
}
