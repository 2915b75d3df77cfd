package models

import "time"

// JoinRequestStatus defines lifecycle states for join requests.
type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusAccepted JoinRequestStatus = "accepted"
	JoinRequestStatusDeclined JoinRequestStatus = "declined"
)

// GroupJoinRequest is a user's request to join a group that requires approval.
type GroupJoinRequest struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	GroupID    uint              `gorm:"not null;index" json:"group_id"`
	UserID     uint              `gorm:"not null;index" json:"user_id"`
	Status     JoinRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Note       string            `gorm:"type:text" json:"note"`
	ReviewedBy *uint             `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (GroupJoinRequest) TableName() string {
	return "group_join_requests"
}
