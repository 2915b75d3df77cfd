// Package notifications publishes group events to Redis channels for the
// delivery layer.
package notifications

import "time"

// Event type constants prevent typos in event names.
const (
	EventGroupCreated        = "group_created"
	EventGroupApproved       = "group_approved"
	EventGroupRejected       = "group_rejected"
	EventGroupUpdated        = "group_updated"
	EventGroupDeleted        = "group_deleted"
	EventMemberJoined        = "member_joined"
	EventMemberLeft          = "member_left"
	EventMemberRemoved       = "member_removed"
	EventMemberPromoted      = "member_promoted"
	EventMemberDemoted       = "member_demoted"
	EventMemberInvited       = "member_invited"
	EventJoinRequested       = "join_requested"
	EventJoinRequestAccepted = "join_request_accepted"
	EventJoinRequestDeclined = "join_request_declined"
	EventMessagePosted       = "message_posted"
)

// Event is the JSON envelope published on every channel.
type Event struct {
	Type       string                 `json:"type"`
	GroupID    uint                   `json:"group_id"`
	ActorID    uint                   `json:"actor_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}
