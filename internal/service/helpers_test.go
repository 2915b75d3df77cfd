package service

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"commons/internal/database"
	"commons/internal/lock"
	"commons/internal/models"
	"commons/internal/notifications"
	"commons/internal/repository"

	"github.com/stretchr/testify/require"
)

const creatorID uint = 1

// tickingClock returns a clock that advances by step on every read.
func tickingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

type recordingPublisher struct {
	mu       sync.Mutex
	group    []notifications.Event
	messages []notifications.Event
	users    map[uint][]notifications.Event
}

func (p *recordingPublisher) PublishUser(_ context.Context, userID uint, ev notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.users == nil {
		p.users = make(map[uint][]notifications.Event)
	}
	p.users[userID] = append(p.users[userID], ev)
	return nil
}

func (p *recordingPublisher) PublishGroupEvent(_ context.Context, ev notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.group = append(p.group, ev)
	return nil
}

func (p *recordingPublisher) PublishGroupMessage(_ context.Context, ev notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, ev)
	return nil
}

func (p *recordingPublisher) groupTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.group))
	for _, ev := range p.group {
		out = append(out, ev.Type)
	}
	return out
}

func (p *recordingPublisher) userEvents(userID uint) []notifications.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notifications.Event(nil), p.users[userID]...)
}

type fixture struct {
	repo     repository.GroupRepository
	locker   lock.Locker
	groups   *GroupService
	messages *MessageChannel
	events   *recordingPublisher
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	repo := repository.NewGroupRepository(database.OpenTestDB(t))
	locker := lock.NewLocalLocker()
	events := &recordingPublisher{}
	opts = append([]Option{WithEvents(events)}, opts...)
	return &fixture{
		repo:     repo,
		locker:   locker,
		groups:   NewGroupService(repo, locker, opts...),
		messages: NewMessageChannel(repo, locker, opts...),
		events:   events,
	}
}

func groupInput(maxMembers int) CreateGroupInput {
	return CreateGroupInput{
		Name:        "River Volunteers",
		Description: "Monthly river bank clean-ups",
		Category:    "environment",
		City:        "Leeds",
		Tags:        []string{"river", "outdoors"},
		MaxMembers:  maxMembers,
	}
}

// pendingGroup creates a Pending group owned by creatorID.
func (f *fixture) pendingGroup(t *testing.T, input CreateGroupInput) *models.Group {
	t.Helper()
	g, err := f.groups.CreateGroup(context.Background(), creatorID, input)
	require.NoError(t, err)
	return g
}

// approvedGroup creates and approves a group owned by creatorID.
func (f *fixture) approvedGroup(t *testing.T, input CreateGroupInput) *models.Group {
	t.Helper()
	g := f.pendingGroup(t, input)
	g, err := f.groups.ModerateGroup(context.Background(), g.ID, 900, DecisionApprove, "")
	require.NoError(t, err)
	return g
}

// withMembers joins each user to the group.
func (f *fixture) withMembers(t *testing.T, groupID uint, users ...uint) {
	t.Helper()
	for _, u := range users {
		_, err := f.groups.Join(context.Background(), groupID, u)
		require.NoError(t, err)
	}
}

func (f *fixture) memberships(t *testing.T, groupID uint) []models.GroupMembership {
	t.Helper()
	ms, err := f.repo.ListMemberships(context.Background(), groupID)
	require.NoError(t, err)
	return ms
}

func (f *fixture) adminCount(t *testing.T, groupID uint) int {
	t.Helper()
	n := 0
	for _, m := range f.memberships(t, groupID) {
		if m.Role == models.GroupRoleAdmin {
			n++
		}
	}
	return n
}

func encodeRaw(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}
