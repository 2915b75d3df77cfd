package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"commons/internal/cache"
	"commons/internal/database"
	"commons/internal/lock"
	"commons/internal/models"
	"commons/internal/notifications"
	"commons/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup_StartsPendingWithNormalisedTags(t *testing.T) {
	f := newFixture(t)
	in := groupInput(10)
	in.Tags = []string{" River", "river", "", "OUTDOORS"}

	g := f.pendingGroup(t, in)

	assert.NotZero(t, g.ID)
	assert.Equal(t, models.GroupLifecyclePending, g.Lifecycle)
	assert.Equal(t, []string{"river", "outdoors"}, g.Tags)
	assert.Equal(t, models.GroupVisibilityPublic, g.Visibility)
	assert.Equal(t, creatorID, g.CreatorID)
	assert.Equal(t, []string{notifications.EventGroupCreated}, f.events.groupTypes())

	stored, err := f.repo.GetGroup(context.Background(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"river", "outdoors"}, stored.Tags)
}

func TestCreateGroup_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *CreateGroupInput)
	}{
		{"empty name", func(in *CreateGroupInput) { in.Name = "" }},
		{"empty description", func(in *CreateGroupInput) { in.Description = " " }},
		{"max members too small", func(in *CreateGroupInput) { in.MaxMembers = 1 }},
		{"max members too large", func(in *CreateGroupInput) { in.MaxMembers = 501 }},
		{"long name", func(in *CreateGroupInput) { in.Name = strings.Repeat("a", 121) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := groupInput(10)
			tt.mutate(&in)
			_, err := f.groups.CreateGroup(ctx, creatorID, in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	_, err := f.groups.CreateGroup(ctx, 0, groupInput(10))
	assert.ErrorIs(t, err, models.ErrValidation)

	pending, err := f.groups.ListPendingGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "rejected input must not be stored")
}

// Scenario E.
func TestModerateGroup_RejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.pendingGroup(t, groupInput(10))

	_, err := f.groups.ModerateGroup(ctx, g.ID, 900, DecisionReject, "")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = f.groups.ModerateGroup(ctx, g.ID, 900, DecisionReject, "   ")
	require.ErrorIs(t, err, models.ErrValidation)

	rejected, err := f.groups.ModerateGroup(ctx, g.ID, 900, DecisionReject, "duplicate")
	require.NoError(t, err)
	assert.Equal(t, models.GroupLifecycleRejected, rejected.Lifecycle)
	assert.Equal(t, "duplicate", rejected.RejectionReason)
	require.NotNil(t, rejected.ReviewedBy)
	assert.Equal(t, uint(900), *rejected.ReviewedBy)

	stored, err := f.repo.GetGroup(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GroupLifecycleRejected, stored.Lifecycle)
	assert.Equal(t, "duplicate", stored.RejectionReason)

	notes := f.events.userEvents(creatorID)
	require.Len(t, notes, 1)
	assert.Equal(t, notifications.EventGroupRejected, notes[0].Type)
	assert.Equal(t, "duplicate", notes[0].Payload["reason"])
}

func TestModerateGroup_TerminalStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	approved := f.approvedGroup(t, groupInput(10))
	_, err := f.groups.ModerateGroup(ctx, approved.ID, 900, DecisionReject, "changed my mind")
	assert.ErrorIs(t, err, models.ErrInvalidState)

	rejected := f.pendingGroup(t, groupInput(10))
	_, err = f.groups.ModerateGroup(ctx, rejected.ID, 900, DecisionReject, "spam")
	require.NoError(t, err)
	_, err = f.groups.ModerateGroup(ctx, rejected.ID, 900, DecisionApprove, "")
	assert.ErrorIs(t, err, models.ErrInvalidState)

	_, err = f.groups.ModerateGroup(ctx, 4242, 900, DecisionApprove, "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.groups.ModerateGroup(ctx, approved.ID, 900, "defer", "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetGroup_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const member, stranger uint = 2, 3

	pending := f.pendingGroup(t, groupInput(10))
	_, err := f.groups.GetGroup(ctx, pending.ID, creatorID)
	assert.NoError(t, err, "the creator always sees their group")
	_, err = f.groups.GetGroup(ctx, pending.ID, stranger)
	assert.ErrorIs(t, err, models.ErrNotFound)

	in := groupInput(10)
	in.Visibility = models.GroupVisibilityPrivate
	private := f.approvedGroup(t, in)
	f.withMembers(t, private.ID, member)

	_, err = f.groups.GetGroup(ctx, private.ID, stranger)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.groups.GetGroup(ctx, private.ID, 0)
	assert.ErrorIs(t, err, models.ErrNotFound)
	got, err := f.groups.GetGroup(ctx, private.ID, member)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	public := f.approvedGroup(t, groupInput(10))
	_, err = f.groups.GetGroup(ctx, public.ID, stranger)
	assert.NoError(t, err)

	_, err = f.groups.GetGroup(ctx, 999, creatorID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateGroupAttributes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const admin, member uint = 2, 3

	g := f.approvedGroup(t, groupInput(10))
	f.withMembers(t, g.ID, admin, member)
	_, err := f.groups.Promote(ctx, g.ID, creatorID, admin)
	require.NoError(t, err)

	name := "Renamed"
	_, err = f.groups.UpdateGroupAttributes(ctx, g.ID, admin, UpdateGroupInput{Name: &name})
	assert.ErrorIs(t, err, models.ErrPermissionDenied, "admins cannot edit attributes")
	_, err = f.groups.UpdateGroupAttributes(ctx, g.ID, member, UpdateGroupInput{Name: &name})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	tags := []string{"Cleanup", "cleanup"}
	updated, err := f.groups.UpdateGroupAttributes(ctx, g.ID, creatorID, UpdateGroupInput{Name: &name, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, []string{"cleanup"}, updated.Tags)
	assert.Equal(t, g.Description, updated.Description, "unset fields are left alone")
	assert.Equal(t, models.GroupLifecycleApproved, updated.Lifecycle)

	tooSmall := 1
	_, err = f.groups.UpdateGroupAttributes(ctx, g.ID, creatorID, UpdateGroupInput{MaxMembers: &tooSmall})
	assert.ErrorIs(t, err, models.ErrValidation)

	// Two stored members; a limit of 2 is allowed, nothing lower.
	two := 2
	_, err = f.groups.UpdateGroupAttributes(ctx, g.ID, creatorID, UpdateGroupInput{MaxMembers: &two})
	require.NoError(t, err)
	_, err = f.groups.Join(ctx, g.ID, 4)
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)

	blank := ""
	_, err = f.groups.UpdateGroupAttributes(ctx, g.ID, creatorID, UpdateGroupInput{Description: &blank})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateGroupAttributes_BelowMemberCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := f.approvedGroup(t, groupInput(10))
	f.withMembers(t, g.ID, 2, 3, 4)

	limit := 2
	_, err := f.groups.UpdateGroupAttributes(ctx, g.ID, creatorID, UpdateGroupInput{MaxMembers: &limit})
	assert.ErrorIs(t, err, models.ErrValidation)

	stored, err := f.repo.GetGroup(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.MaxMembers)
}

func TestDeleteGroup_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := f.approvedGroup(t, groupInput(10))
	f.withMembers(t, g.ID, 2, 3)
	_, err := f.messages.Post(ctx, PostMessageInput{GroupID: g.ID, SenderID: creatorID, Content: "welcome"})
	require.NoError(t, err)

	err = f.groups.DeleteGroup(ctx, g.ID, 2)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	require.NoError(t, f.groups.DeleteGroup(ctx, g.ID, creatorID))
	err = f.groups.DeleteGroup(ctx, g.ID, creatorID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Empty(t, f.memberships(t, g.ID))
	msgs, err := f.repo.ListMessagesAfter(ctx, g.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	_, err = f.groups.GetGroup(ctx, g.ID, creatorID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListApprovedGroups_OnlyApprovedPublic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.pendingGroup(t, groupInput(10))
	rejected := f.pendingGroup(t, groupInput(10))
	_, err := f.groups.ModerateGroup(ctx, rejected.ID, 900, DecisionReject, "spam")
	require.NoError(t, err)
	private := groupInput(10)
	private.Visibility = models.GroupVisibilityPrivate
	f.approvedGroup(t, private)
	visible := f.approvedGroup(t, groupInput(10))

	groups, err := f.groups.ListApprovedGroups(ctx, repository.GroupFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, visible.ID, groups[0].ID)

	mine, err := f.groups.ListGroupsForUser(ctx, creatorID)
	require.NoError(t, err)
	assert.Len(t, mine, 4, "creators see their own groups in every state")
}

func TestListApprovedGroups_CacheFollowsModeration(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newFixture(t, WithCache(cache.NewStore(rdb)), WithListingTTL(time.Hour))
	ctx := context.Background()
	filter := repository.GroupFilter{Category: "environment"}

	first := f.approvedGroup(t, groupInput(10))
	groups, err := f.groups.ListApprovedGroups(ctx, filter)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, mr.Keys(), 3, "listing and group version counters plus one listing")

	second := f.approvedGroup(t, groupInput(10))
	groups, err = f.groups.ListApprovedGroups(ctx, filter)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	ids := []uint{groups[0].ID, groups[1].ID}
	assert.ElementsMatch(t, []uint{first.ID, second.ID}, ids, "approval bumps the listing version")

	require.NoError(t, f.groups.DeleteGroup(ctx, second.ID, creatorID))
	groups, err = f.groups.ListApprovedGroups(ctx, filter)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, first.ID, groups[0].ID)
}

// stallingRepo holds the first plain GetGroup after it has read the row, so a
// write can commit between the read and the cache fill.
type stallingRepo struct {
	repository.GroupRepository
	once   sync.Once
	read   chan struct{}
	resume chan struct{}
}

func (r *stallingRepo) GetGroup(ctx context.Context, id uint) (*models.Group, error) {
	g, err := r.GroupRepository.GetGroup(ctx, id)
	r.once.Do(func() {
		close(r.read)
		<-r.resume
	})
	return g, err
}

// racedGroupCache runs a GetGroup whose fill is overtaken by write, then
// returns a service sharing the same cache for follow-up reads.
func racedGroupCache(t *testing.T, requester uint, setup func(*GroupService) *models.Group, write func(*GroupService, *models.Group)) (*GroupService, *models.Group) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := cache.NewStore(rdb)

	repo := repository.NewGroupRepository(database.OpenTestDB(t))
	locker := lock.NewLocalLocker()
	groups := NewGroupService(repo, locker, WithCache(store))
	g := setup(groups)

	stalled := &stallingRepo{GroupRepository: repo, read: make(chan struct{}), resume: make(chan struct{})}
	reader := NewGroupService(stalled, locker, WithCache(store))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = reader.GetGroup(context.Background(), g.ID, requester)
	}()
	<-stalled.read
	write(groups, g)
	close(stalled.resume)
	<-done
	return groups, g
}

func TestGetGroup_CacheFillRacingDelete(t *testing.T) {
	const stranger uint = 42
	groups, g := racedGroupCache(t, stranger,
		func(s *GroupService) *models.Group {
			g, err := s.CreateGroup(context.Background(), creatorID, groupInput(10))
			require.NoError(t, err)
			g, err = s.ModerateGroup(context.Background(), g.ID, 900, DecisionApprove, "")
			require.NoError(t, err)
			return g
		},
		func(s *GroupService, g *models.Group) {
			require.NoError(t, s.DeleteGroup(context.Background(), g.ID, creatorID))
		})

	_, err := groups.GetGroup(context.Background(), g.ID, stranger)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetGroup_CacheFillRacingApproval(t *testing.T) {
	const stranger uint = 42
	groups, g := racedGroupCache(t, stranger,
		func(s *GroupService) *models.Group {
			g, err := s.CreateGroup(context.Background(), creatorID, groupInput(10))
			require.NoError(t, err)
			return g
		},
		func(s *GroupService, g *models.Group) {
			_, err := s.ModerateGroup(context.Background(), g.ID, 900, DecisionApprove, "")
			require.NoError(t, err)
		})

	got, err := groups.GetGroup(context.Background(), g.ID, stranger)
	require.NoError(t, err)
	assert.Equal(t, models.GroupLifecycleApproved, got.Lifecycle)
}
