package models

import "time"

// GroupRole defines a member's role in a group.
type GroupRole string

const (
	// GroupRoleCreator is derived from Group.CreatorID and never stored.
	GroupRoleCreator GroupRole = "creator"
	// GroupRoleAdmin may post and review join requests.
	GroupRoleAdmin GroupRole = "admin"
	// GroupRoleMember is the default role.
	GroupRoleMember GroupRole = "member"
)

// GroupMembership maps users to groups and tracks role.
// The creator never has a row here.
type GroupMembership struct {
	GroupID   uint      `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	Role      GroupRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt  time.Time `gorm:"not null" json:"joined_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (GroupMembership) TableName() string {
	return "group_memberships"
}
