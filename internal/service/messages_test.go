package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"commons/internal/models"
	"commons/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, f *fixture, groupID, sender uint, content string) *models.GroupMessage {
	t.Helper()
	msg, err := f.messages.Post(context.Background(), PostMessageInput{GroupID: groupID, SenderID: sender, Content: content})
	require.NoError(t, err)
	return msg
}

// Scenario D.
func TestPost_OnlyCreatorAndAdmins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const admin, member uint = 10, 11
	g := f.approvedGroup(t, groupInput(10))
	f.withMembers(t, g.ID, admin, member)
	_, err := f.groups.Promote(ctx, g.ID, creatorID, admin)
	require.NoError(t, err)

	_, err = f.messages.Post(ctx, PostMessageInput{GroupID: g.ID, SenderID: member, Content: "hi"})
	require.ErrorIs(t, err, models.ErrPermissionDenied)
	_, err = f.messages.Post(ctx, PostMessageInput{GroupID: g.ID, SenderID: 99, Content: "hi"})
	require.ErrorIs(t, err, models.ErrPermissionDenied)

	msg := post(t, f, g.ID, admin, "meeting moved to 6pm")
	assert.Equal(t, uint64(1), msg.Seq)
	assert.Equal(t, models.MessageKindText, msg.Kind)
	assert.NotEmpty(t, msg.ID)

	page, err := f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: member})
	require.NoError(t, err)
	require.Len(t, page.Messages, 1, "the denied post appended nothing")
	assert.Equal(t, msg.ID, page.Messages[0].ID)
	assert.Equal(t, "meeting moved to 6pm", page.Messages[0].Content)

	require.Len(t, f.events.messages, 1)
	assert.Equal(t, notifications.EventMessagePosted, f.events.messages[0].Type)
}

func TestPost_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.approvedGroup(t, groupInput(10))

	tests := []struct {
		name  string
		input PostMessageInput
	}{
		{"empty text", PostMessageInput{Content: "  "}},
		{"too long", PostMessageInput{Content: strings.Repeat("x", 10001)}},
		{"image without media", PostMessageInput{Kind: models.MessageKindImage, Content: "caption"}},
		{"unknown kind", PostMessageInput{Kind: "poll", Content: "?"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.GroupID, in.SenderID = g.ID, creatorID
			_, err := f.messages.Post(ctx, in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	img, err := f.messages.Post(ctx, PostMessageInput{
		GroupID: g.ID, SenderID: creatorID, Kind: models.MessageKindImage, MediaRef: "https://cdn.example.org/flyer.png",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MessageKindImage, img.Kind)

	_, err = f.messages.Post(ctx, PostMessageInput{GroupID: 555, SenderID: creatorID, Content: "hello"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPost_PendingGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.pendingGroup(t, groupInput(10))

	_, err := f.messages.Post(ctx, PostMessageInput{GroupID: g.ID, SenderID: 10, Content: "hello"})
	assert.ErrorIs(t, err, models.ErrGroupNotApproved)

	_, err = f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: 10})
	assert.ErrorIs(t, err, models.ErrGroupNotApproved)
}

func TestPost_CreatedAtNeverGoesBackwards(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	readings := []time.Time{base, base.Add(time.Second), base.Add(-time.Hour), base.Add(2 * time.Second)}
	var i int
	clock := func() time.Time {
		if i >= len(readings) {
			return readings[len(readings)-1]
		}
		now := readings[i]
		i++
		return now
	}

	f := newFixture(t)
	g := f.approvedGroup(t, groupInput(10))
	f.messages.now = clock

	var posted []*models.GroupMessage
	for n := 0; n < 4; n++ {
		posted = append(posted, post(t, f, g.ID, creatorID, fmt.Sprintf("m%d", n)))
	}
	assert.True(t, posted[2].CreatedAt.Equal(posted[1].CreatedAt), "a clock step back is clamped to the previous message")
	for n := 1; n < len(posted); n++ {
		assert.Equal(t, posted[n-1].Seq+1, posted[n].Seq)
		assert.False(t, posted[n].CreatedAt.Before(posted[n-1].CreatedAt))
	}
}

func TestList_PaginatesWithoutGapsOrDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const member uint = 11
	g := f.approvedGroup(t, groupInput(10))
	f.withMembers(t, g.ID, member)

	for n := 0; n < 7; n++ {
		post(t, f, g.ID, creatorID, fmt.Sprintf("m%d", n))
	}

	var seen []string
	token := ""
	pages := 0
	for {
		page, err := f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: member, PageToken: token, PageSize: 3})
		require.NoError(t, err)
		pages++
		for _, m := range page.Messages {
			seen = append(seen, m.Content)
		}
		require.NotEmpty(t, page.NextPageToken)
		token = page.NextPageToken
		if !page.HasMore {
			break
		}
	}
	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{"m0", "m1", "m2", "m3", "m4", "m5", "m6"}, seen)

	// The last token resumes exactly after what was read.
	post(t, f, g.ID, creatorID, "m7")
	page, err := f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: member, PageToken: token, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, "m7", page.Messages[0].Content)
	assert.False(t, page.HasMore)

	empty, err := f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: member, PageToken: page.NextPageToken})
	require.NoError(t, err)
	assert.Empty(t, empty.Messages)
	assert.Equal(t, page.NextPageToken, empty.NextPageToken)
}

func TestList_Tokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.approvedGroup(t, groupInput(10))
	other := f.approvedGroup(t, groupInput(10))
	post(t, f, g.ID, creatorID, "hello")

	page, err := f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: creatorID})
	require.NoError(t, err)

	_, err = f.messages.List(ctx, ListMessagesInput{GroupID: other.ID, RequesterID: creatorID, PageToken: page.NextPageToken})
	assert.ErrorIs(t, err, models.ErrValidation, "tokens are bound to their group")

	for _, bad := range []string{"not-base64!", encodeRaw("v2:1:1"), encodeRaw("v1:x:1"), encodeRaw("v1:1")} {
		_, err = f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: creatorID, PageToken: bad})
		assert.ErrorIs(t, err, models.ErrValidation, bad)
	}

	_, err = f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: 99})
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
}

func TestPageToken_RoundTrip(t *testing.T) {
	token := encodePageToken(42, 1337)
	seq, err := decodePageToken(token, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(1337), seq)
	assert.NotContains(t, token, "1337", "tokens are opaque")

	seq, err = decodePageToken("", 42)
	require.NoError(t, err)
	assert.Zero(t, seq)
}

func TestList_PageSizeBounds(t *testing.T) {
	f := newFixture(t, WithPageSize(2))
	ctx := context.Background()
	g := f.approvedGroup(t, groupInput(10))
	for n := 0; n < 3; n++ {
		post(t, f, g.ID, creatorID, fmt.Sprintf("m%d", n))
	}

	page, err := f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: creatorID})
	require.NoError(t, err)
	assert.Len(t, page.Messages, 2, "configured default page size")
	assert.True(t, page.HasMore)

	page, err = f.messages.List(ctx, ListMessagesInput{GroupID: g.ID, RequesterID: creatorID, PageSize: 10_000})
	require.NoError(t, err)
	assert.Len(t, page.Messages, 3)
}

func TestMessages_Iterator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const member uint = 11
	g := f.approvedGroup(t, groupInput(10))
	f.withMembers(t, g.ID, member)
	for n := 0; n < 5; n++ {
		post(t, f, g.ID, creatorID, fmt.Sprintf("m%d", n))
	}

	var got []uint64
	for m, err := range f.messages.Messages(ctx, g.ID, member, 2) {
		require.NoError(t, err)
		got = append(got, m.Seq)
	}
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, got)

	got = got[:0]
	for m, err := range f.messages.Messages(ctx, g.ID, member, 2) {
		require.NoError(t, err)
		got = append(got, m.Seq)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []uint64{1, 2, 3}, got, "the consumer can stop early")
}

func TestMessages_IteratorRechecksAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const member uint = 11
	g := f.approvedGroup(t, groupInput(10))
	f.withMembers(t, g.ID, member)
	for n := 0; n < 4; n++ {
		post(t, f, g.ID, creatorID, fmt.Sprintf("m%d", n))
	}

	var got int
	var lastErr error
	for _, err := range f.messages.Messages(ctx, g.ID, member, 2) {
		if err != nil {
			lastErr = err
			break
		}
		got++
		if got == 2 {
			require.NoError(t, f.groups.Leave(ctx, g.ID, member))
		}
	}
	assert.Equal(t, 2, got)
	assert.ErrorIs(t, lastErr, models.ErrPermissionDenied)
}
