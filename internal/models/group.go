// Package models holds the persisted records of the group subsystem and its error kinds.
package models

import "time"

// GroupLifecycle defines the moderation state of a group.
type GroupLifecycle string

const (
	// GroupLifecyclePending indicates a group is awaiting moderation.
	GroupLifecyclePending GroupLifecycle = "pending"
	// GroupLifecycleApproved indicates a group is visible and joinable.
	GroupLifecycleApproved GroupLifecycle = "approved"
	// GroupLifecycleRejected indicates a moderator declined the group.
	GroupLifecycleRejected GroupLifecycle = "rejected"
)

// GroupVisibility controls whether a group shows up in discovery.
type GroupVisibility string

const (
	GroupVisibilityPublic  GroupVisibility = "public"
	GroupVisibilityPrivate GroupVisibility = "private"
)

// Group member bounds.
const (
	MinGroupMembers = 2
	MaxGroupMembers = 500
	// MaxGroupAdmins counts admins other than the creator.
	MaxGroupAdmins = 2
)

// GroupSettings are creator-controlled switches.
type GroupSettings struct {
	AllowMemberInvites bool `gorm:"not null;default:false" json:"allow_member_invites"`
	RequireApproval    bool `gorm:"not null;default:false" json:"require_approval"`
}

// Group is a moderated community space owned by a single creator.
type Group struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"size:120;not null" json:"name"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Category        string          `gorm:"size:60;index" json:"category"`
	City            string          `gorm:"size:80;index" json:"city"`
	Tags            []string        `gorm:"type:text;serializer:json" json:"tags"`
	AvatarRef       string          `gorm:"size:512" json:"avatar_ref"`
	CreatorID       uint            `gorm:"not null;index" json:"creator_id"`
	Lifecycle       GroupLifecycle  `gorm:"type:varchar(20);not null;default:'pending';index" json:"lifecycle_state"`
	RejectionReason string          `gorm:"type:text" json:"rejection_reason,omitempty"`
	ReviewedBy      *uint           `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	Visibility      GroupVisibility `gorm:"type:varchar(20);not null;default:'public'" json:"visibility"`
	MaxMembers      int             `gorm:"not null" json:"max_members"`
	Settings        GroupSettings   `gorm:"embedded;embeddedPrefix:setting_" json:"settings"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}
