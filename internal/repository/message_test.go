package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"commons/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_MessagesBySeq(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	g := seedGroup(t, repo, nil)

	last, err := repo.LastMessage(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, last)

	at := time.Now()
	for seq := uint64(1); seq <= 5; seq++ {
		require.NoError(t, repo.CreateMessage(ctx, &models.GroupMessage{
			ID:        fmt.Sprintf("msg-%d", seq),
			GroupID:   g.ID,
			Seq:       seq,
			SenderID:  1,
			Kind:      models.MessageKindText,
			Content:   fmt.Sprintf("hello %d", seq),
			CreatedAt: at, // identical timestamps; seq breaks the tie
		}))
	}

	last, err = repo.LastMessage(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, uint64(5), last.Seq)

	page, err := repo.ListMessagesAfter(ctx, g.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(3), page[0].Seq)
	assert.Equal(t, uint64(4), page[1].Seq)

	err = repo.CreateMessage(ctx, &models.GroupMessage{ID: "dup", GroupID: g.ID, Seq: 5, SenderID: 1, Kind: models.MessageKindText, Content: "x", CreatedAt: at})
	assert.ErrorIs(t, err, models.ErrInternal, "seq is unique per group")
}
