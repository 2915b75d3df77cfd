package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"commons/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Channel layout.
const (
	userChannelPattern     = "notifications:user:%d"
	groupEventsPattern     = "groups:%d:events"
	groupMessagesPattern   = "groups:%d:messages"
	GroupChannelWildcard   = "groups:*"
	UserChannelWildcard    = "notifications:user:*"
	groupMessagesSubSuffix = ":messages"
)

func UserChannel(userID uint) string { return fmt.Sprintf(userChannelPattern, userID) }

func GroupEventsChannel(groupID uint) string { return fmt.Sprintf(groupEventsPattern, groupID) }

func GroupMessagesChannel(groupID uint) string { return fmt.Sprintf(groupMessagesPattern, groupID) }

// IsMessageChannel reports whether channel carries posted messages.
func IsMessageChannel(channel string) bool {
	return strings.HasPrefix(channel, "groups:") && strings.HasSuffix(channel, groupMessagesSubSuffix)
}

// Notifier provides helpers to publish notifications into Redis channels.
// A Notifier with a nil client drops everything.
type Notifier struct {
	rdb *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

func (n *Notifier) publish(ctx context.Context, channel string, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	ctx, span := observability.TraceRedisOperation(ctx, "publish")
	defer span.End()
	if err := n.rdb.Publish(ctx, channel, b).Err(); err != nil {
		observability.EventPublishFailures.WithLabelValues(ev.Type).Inc()
		return fmt.Errorf("publish %s to %s: %w", ev.Type, channel, err)
	}
	return nil
}

// PublishUser sends an event to a user's personal channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, ev Event) error {
	return n.publish(ctx, UserChannel(userID), ev)
}

// PublishGroupEvent sends a membership or lifecycle event to the group's channel.
func (n *Notifier) PublishGroupEvent(ctx context.Context, ev Event) error {
	return n.publish(ctx, GroupEventsChannel(ev.GroupID), ev)
}

// PublishGroupMessage hands a posted message to the delivery layer.
func (n *Notifier) PublishGroupMessage(ctx context.Context, ev Event) error {
	return n.publish(ctx, GroupMessagesChannel(ev.GroupID), ev)
}

// Subscribe listens on the given channel patterns and calls onMessage for each
// message until ctx is done. The returned channel closes once the
// subscription is torn down.
func (n *Notifier) Subscribe(ctx context.Context, onMessage func(channel, payload string), patterns ...string) (<-chan struct{}, error) {
	done := make(chan struct{})
	if n == nil || n.rdb == nil {
		close(done)
		return done, nil
	}

	sub := n.rdb.PSubscribe(ctx, patterns...)
	// Wait for the subscription confirmation so no publish is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		close(done)
		return done, fmt.Errorf("subscribe %v: %w", patterns, err)
	}

	ch := sub.Channel()
	go func() {
		defer close(done)
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				onMessage(msg.Channel, msg.Payload)
			}
		}
	}()

	return done, nil
}
