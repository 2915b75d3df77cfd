package models

import "time"

// MessageKind classifies a group message.
type MessageKind string

const (
	MessageKindText         MessageKind = "text"
	MessageKindImage        MessageKind = "image"
	MessageKindAnnouncement MessageKind = "announcement"
)

// GroupMessage is an immutable entry in a group's message log.
// Seq is strictly increasing per group and is the total order.
type GroupMessage struct {
	ID        string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	GroupID   uint        `gorm:"not null;uniqueIndex:idx_group_messages_group_seq,priority:1" json:"group_id"`
	Seq       uint64      `gorm:"not null;uniqueIndex:idx_group_messages_group_seq,priority:2" json:"seq"`
	SenderID  uint        `gorm:"not null;index" json:"sender_id"`
	Kind      MessageKind `gorm:"type:varchar(20);not null" json:"kind"`
	Content   string      `gorm:"type:text" json:"content,omitempty"`
	MediaRef  string      `gorm:"size:512" json:"media_ref,omitempty"`
	CreatedAt time.Time   `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (GroupMessage) TableName() string {
	return "group_messages"
}
