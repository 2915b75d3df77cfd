package repository

import (
	"context"
	"testing"
	"time"

	"commons/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_MembershipLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	g := seedGroup(t, repo, nil)

	base := time.Now()
	require.NoError(t, repo.CreateMembership(ctx, &models.GroupMembership{GroupID: g.ID, UserID: 3, Role: models.GroupRoleMember, JoinedAt: base.Add(time.Second)}))
	require.NoError(t, repo.CreateMembership(ctx, &models.GroupMembership{GroupID: g.ID, UserID: 2, Role: models.GroupRoleMember, JoinedAt: base}))

	err := repo.CreateMembership(ctx, &models.GroupMembership{GroupID: g.ID, UserID: 2, Role: models.GroupRoleMember, JoinedAt: base})
	assert.ErrorIs(t, err, models.ErrAlreadyMember)

	rows, err := repo.ListMemberships(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(2), rows[0].UserID, "ordered by join time")

	require.NoError(t, repo.UpdateMembershipRole(ctx, g.ID, 2, models.GroupRoleAdmin))
	m, err := repo.GetMembership(ctx, g.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, models.GroupRoleAdmin, m.Role)

	assert.ErrorIs(t, repo.UpdateMembershipRole(ctx, g.ID, 42, models.GroupRoleAdmin), models.ErrTargetNotMember)

	require.NoError(t, repo.DeleteMembership(ctx, g.ID, 2))
	assert.ErrorIs(t, repo.DeleteMembership(ctx, g.ID, 2), models.ErrNotAMember)

	m, err = repo.GetMembership(ctx, g.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestGroupRepository_JoinRequests(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	g := seedGroup(t, repo, nil)

	req := &models.GroupJoinRequest{GroupID: g.ID, UserID: 9, Status: models.JoinRequestStatusPending, Note: "I can drive"}
	require.NoError(t, repo.CreateJoinRequest(ctx, req))

	pending, err := repo.GetPendingJoinRequest(ctx, g.ID, 9)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, req.ID, pending.ID)

	_, err = repo.GetJoinRequest(ctx, g.ID+1, req.ID)
	assert.ErrorIs(t, err, models.ErrNotFound, "request is scoped to its group")

	reviewer := uint(1)
	pending.Status = models.JoinRequestStatusDeclined
	pending.ReviewedBy = &reviewer
	require.NoError(t, repo.SaveJoinRequest(ctx, pending))

	none, err := repo.GetPendingJoinRequest(ctx, g.ID, 9)
	require.NoError(t, err)
	assert.Nil(t, none)

	list, err := repo.ListPendingJoinRequests(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
