package service

import (
	"context"
	"iter"

	"commons/internal/lock"
	"commons/internal/models"
	"commons/internal/notifications"
	"commons/internal/observability"
	"commons/internal/permission"
	"commons/internal/repository"
	"commons/internal/validation"

	"github.com/google/uuid"
)

// Message page size bounds.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// MessageChannel is the append-only, ordered message log of each group.
type MessageChannel struct {
	deps
}

// NewMessageChannel wires a MessageChannel. Pass the same locker as the
// GroupService so deletes and posts exclude each other.
func NewMessageChannel(repo repository.GroupRepository, locker lock.Locker, opts ...Option) *MessageChannel {
	return &MessageChannel{deps: newDeps(repo, locker, "message_channel", opts)}
}

// PostMessageInput is a message to append.
type PostMessageInput struct {
	GroupID  uint               `json:"-"`
	SenderID uint               `json:"-"`
	Kind     models.MessageKind `json:"kind"`
	Content  string             `json:"content"`
	MediaRef string             `json:"media_ref"`
}

// ListMessagesInput selects one page of a group's log.
type ListMessagesInput struct {
	GroupID     uint
	RequesterID uint
	PageToken   string
	PageSize    int
}

// MessagePage is one page of messages in log order. NextPageToken always
// resumes after the last message seen, even on a short page.
type MessagePage struct {
	Messages      []models.GroupMessage `json:"messages"`
	NextPageToken string                `json:"next_page_token"`
	HasMore       bool                  `json:"has_more"`
}

// Post appends a message when the sender may post. Seq and createdAt are
// assigned under the group's message lock so the log has one total order and
// createdAt never goes backwards.
func (c *MessageChannel) Post(ctx context.Context, input PostMessageInput) (msg *models.GroupMessage, err error) {
	ctx, finish := c.begin(ctx, "post_message", input.GroupID, input.SenderID)
	defer func() { finish(err) }()

	if input.Kind == "" {
		input.Kind = models.MessageKindText
	}
	if err := validation.ValidateMessage(input.Kind, input.Content, input.MediaRef); err != nil {
		return nil, err
	}

	release, err := c.locker.Acquire(ctx, lock.MessagesKey(input.GroupID))
	if err != nil {
		return nil, err
	}
	defer release()

	err = c.repo.Transaction(ctx, func(tx repository.GroupRepository) error {
		group, err := tx.GetGroupForUpdate(ctx, input.GroupID)
		if err != nil {
			return err
		}
		if err := c.gate(ctx, tx, group, permission.ActionPostMessage, input.SenderID); err != nil {
			return err
		}

		last, err := tx.LastMessage(ctx, input.GroupID)
		if err != nil {
			return err
		}
		m := models.GroupMessage{
			ID:        uuid.NewString(),
			GroupID:   input.GroupID,
			Seq:       1,
			SenderID:  input.SenderID,
			Kind:      input.Kind,
			Content:   input.Content,
			MediaRef:  input.MediaRef,
			CreatedAt: c.now(),
		}
		if last != nil {
			m.Seq = last.Seq + 1
			if m.CreatedAt.Before(last.CreatedAt) {
				m.CreatedAt = last.CreatedAt
			}
		}
		if err := tx.CreateMessage(ctx, &m); err != nil {
			return err
		}
		msg = &m
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.MessageThroughput.WithLabelValues(string(msg.Kind)).Inc()
	if c.events != nil {
		ev := notifications.Event{
			Type:       notifications.EventMessagePosted,
			GroupID:    msg.GroupID,
			ActorID:    msg.SenderID,
			OccurredAt: msg.CreatedAt.UTC(),
			Payload: map[string]interface{}{
				"message_id": msg.ID,
				"seq":        msg.Seq,
				"kind":       msg.Kind,
				"content":    msg.Content,
				"media_ref":  msg.MediaRef,
			},
		}
		if err := c.events.PublishGroupMessage(ctx, ev); err != nil {
			observability.LogAsyncOperationError(ctx, "publish_group_message", err, map[string]interface{}{
				"group_id":   msg.GroupID,
				"message_id": msg.ID,
			})
		}
	}
	return msg, nil
}

// gate evaluates action for userID against group and its membership row.
func (c *MessageChannel) gate(ctx context.Context, repo repository.GroupRepository, group *models.Group, action permission.Action, userID uint) error {
	var membership *models.GroupMembership
	if userID != group.CreatorID {
		var err error
		if membership, err = repo.GetMembership(ctx, group.ID, userID); err != nil {
			return err
		}
	}
	d := permission.Evaluate(permission.Input{
		Action:     action,
		Role:       permission.RoleOf(group, userID, membership),
		Lifecycle:  group.Lifecycle,
		Visibility: group.Visibility,
	})
	return denial(action, d, group)
}

// List returns one page of messages after the token's position.
func (c *MessageChannel) List(ctx context.Context, input ListMessagesInput) (page *MessagePage, err error) {
	ctx, finish := c.begin(ctx, "list_messages", input.GroupID, input.RequesterID)
	defer func() { finish(err) }()

	afterSeq, err := decodePageToken(input.PageToken, input.GroupID)
	if err != nil {
		return nil, err
	}
	size := input.PageSize
	if size <= 0 {
		size = c.pageSize
	}
	size = min(size, MaxPageSize)

	group, err := c.repo.GetGroup(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if err := c.gate(ctx, c.repo, group, permission.ActionViewMessages, input.RequesterID); err != nil {
		return nil, err
	}

	msgs, err := c.repo.ListMessagesAfter(ctx, input.GroupID, afterSeq, size+1)
	if err != nil {
		return nil, err
	}
	page = &MessagePage{Messages: msgs}
	if len(msgs) > size {
		page.Messages = msgs[:size]
		page.HasMore = true
	}
	if n := len(page.Messages); n > 0 {
		afterSeq = page.Messages[n-1].Seq
	}
	page.NextPageToken = encodePageToken(input.GroupID, afterSeq)
	if page.Messages == nil {
		page.Messages = []models.GroupMessage{}
	}
	return page, nil
}

// Messages walks a group's log from the start, fetching a page at a time and
// re-checking the requester's access before each page. Iteration stops after
// the first short page or the first error.
func (c *MessageChannel) Messages(ctx context.Context, groupID, requesterID uint, pageSize int) iter.Seq2[models.GroupMessage, error] {
	return func(yield func(models.GroupMessage, error) bool) {
		token := ""
		for {
			page, err := c.List(ctx, ListMessagesInput{
				GroupID:     groupID,
				RequesterID: requesterID,
				PageToken:   token,
				PageSize:    pageSize,
			})
			if err != nil {
				yield(models.GroupMessage{}, err)
				return
			}
			for _, m := range page.Messages {
				if !yield(m, nil) {
					return
				}
			}
			if !page.HasMore {
				return
			}
			token = page.NextPageToken
		}
	}
}
