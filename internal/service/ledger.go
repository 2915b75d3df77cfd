package service

import (
	"context"
	"slices"
	"time"

	"commons/internal/models"
	"commons/internal/repository"
)

// ledger applies membership changes inside a critical section and keeps the
// snapshot in step with what was written. It owns the uniqueness, capacity
// and admin-count invariants; authorisation happens before it is called.
type ledger struct {
	tx   repository.GroupRepository
	snap *GroupSnapshot
	now  func() time.Time
}

func (l *ledger) add(ctx context.Context, userID uint) (*models.GroupMembership, error) {
	if l.snap.IsMember(userID) {
		return nil, models.NewAlreadyMemberError()
	}
	if l.snap.IsFull() {
		return nil, models.NewCapacityExceededError(l.snap.Group.MaxMembers)
	}
	m := models.GroupMembership{
		GroupID:  l.snap.Group.ID,
		UserID:   userID,
		Role:     models.GroupRoleMember,
		JoinedAt: l.now(),
	}
	if err := l.tx.CreateMembership(ctx, &m); err != nil {
		return nil, err
	}
	l.snap.Members = append(l.snap.Members, m)
	return &m, nil
}

func (l *ledger) promote(ctx context.Context, userID uint) error {
	m := l.snap.Membership(userID)
	switch {
	case userID == l.snap.Group.CreatorID:
		return models.NewAlreadyAdminError(userID)
	case m == nil:
		return models.NewTargetNotMemberError(userID)
	case m.Role == models.GroupRoleAdmin:
		return models.NewAlreadyAdminError(userID)
	case l.snap.AdminCount() >= models.MaxGroupAdmins:
		return models.NewAdminLimitReachedError(models.MaxGroupAdmins)
	}
	if err := l.tx.UpdateMembershipRole(ctx, l.snap.Group.ID, userID, models.GroupRoleAdmin); err != nil {
		return err
	}
	m.Role = models.GroupRoleAdmin
	return nil
}

func (l *ledger) demote(ctx context.Context, userID uint) error {
	m := l.snap.Membership(userID)
	switch {
	case userID == l.snap.Group.CreatorID:
		return models.NewValidationError("the group creator cannot be demoted")
	case m == nil:
		return models.NewTargetNotMemberError(userID)
	case m.Role != models.GroupRoleAdmin:
		return models.NewNotAdminError(userID)
	}
	if err := l.tx.UpdateMembershipRole(ctx, l.snap.Group.ID, userID, models.GroupRoleMember); err != nil {
		return err
	}
	m.Role = models.GroupRoleMember
	return nil
}

// remove deletes a non-creator's row whatever its role.
func (l *ledger) remove(ctx context.Context, userID uint) error {
	if userID == l.snap.Group.CreatorID {
		return models.NewCannotRemoveCreatorError()
	}
	if l.snap.Membership(userID) == nil {
		return models.NewTargetNotMemberError(userID)
	}
	if err := l.tx.DeleteMembership(ctx, l.snap.Group.ID, userID); err != nil {
		return err
	}
	l.snap.Members = slices.DeleteFunc(l.snap.Members, func(m models.GroupMembership) bool {
		return m.UserID == userID
	})
	return nil
}
