package service

import (
	"context"
	"fmt"

	"commons/internal/models"
	"commons/internal/permission"
	"commons/internal/repository"
)

// GroupSnapshot is a group and its membership rows read inside the group's
// critical section. The creator is never among Members.
type GroupSnapshot struct {
	Group   models.Group             `json:"group"`
	Members []models.GroupMembership `json:"members"`
}

func loadSnapshot(ctx context.Context, repo repository.GroupRepository, groupID uint) (*GroupSnapshot, error) {
	group, err := repo.GetGroupForUpdate(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := repo.ListMemberships(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupSnapshot{Group: *group, Members: members}, nil
}

// Membership returns the user's row, or nil.
func (s *GroupSnapshot) Membership(userID uint) *models.GroupMembership {
	for i := range s.Members {
		if s.Members[i].UserID == userID {
			return &s.Members[i]
		}
	}
	return nil
}

// RoleOf derives the user's role.
func (s *GroupSnapshot) RoleOf(userID uint) permission.Role {
	return permission.RoleOf(&s.Group, userID, s.Membership(userID))
}

// IsMember reports whether the user is the creator or holds a row.
func (s *GroupSnapshot) IsMember(userID uint) bool {
	return s.RoleOf(userID) != permission.RoleNone
}

// AdminCount counts stored admins; the creator is not included.
func (s *GroupSnapshot) AdminCount() int {
	n := 0
	for _, m := range s.Members {
		if m.Role == models.GroupRoleAdmin {
			n++
		}
	}
	return n
}

// MemberCount counts stored rows; the creator is not included.
func (s *GroupSnapshot) MemberCount() int {
	return len(s.Members)
}

// IsFull reports whether another stored member would exceed MaxMembers.
func (s *GroupSnapshot) IsFull() bool {
	return s.MemberCount() >= s.Group.MaxMembers
}

func (s *GroupSnapshot) input(action permission.Action, actorID uint) permission.Input {
	return permission.Input{
		Action:             action,
		Role:               s.RoleOf(actorID),
		Lifecycle:          s.Group.Lifecycle,
		Visibility:         s.Group.Visibility,
		GroupFull:          s.IsFull(),
		AllowMemberInvites: s.Group.Settings.AllowMemberInvites,
	}
}

// authorize evaluates action for actorID and maps a denial to its error kind.
func (s *GroupSnapshot) authorize(action permission.Action, actorID uint) error {
	return denial(action, permission.Evaluate(s.input(action, actorID)), &s.Group)
}

// denial maps an evaluator verdict to the caller-facing error.
func denial(action permission.Action, d permission.Decision, group *models.Group) error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case permission.ReasonNotApproved:
		return models.NewGroupNotApprovedError()
	case permission.ReasonAlreadyMember:
		return models.NewAlreadyMemberError()
	case permission.ReasonGroupFull:
		return models.NewCapacityExceededError(group.MaxMembers)
	case permission.ReasonCreatorMustDelete:
		return models.NewCreatorCannotLeaveError()
	case permission.ReasonPrivateGroup:
		return models.NewNotFoundError("Group", group.ID)
	case permission.ReasonNotMember:
		if action == permission.ActionLeave {
			return models.NewNotAMemberError()
		}
		return models.NewPermissionDeniedError("you are not a member of this group")
	case permission.ReasonInvitesDisabled:
		return models.NewPermissionDeniedError("members may not invite to this group")
	case permission.ReasonRole:
		return models.NewPermissionDeniedError(roleDeniedMessage(action))
	default:
		return models.NewInternalError(fmt.Errorf("unhandled denial %q for %s", d.Reason, action))
	}
}

func roleDeniedMessage(action permission.Action) string {
	switch action {
	case permission.ActionPostMessage:
		return "only the creator and admins can post in this group"
	case permission.ActionReviewJoinRequest:
		return "only the creator and admins can review join requests"
	default:
		return "only the group creator can " + humanAction(action)
	}
}

func humanAction(action permission.Action) string {
	switch action {
	case permission.ActionPromote:
		return "promote members"
	case permission.ActionDemote:
		return "demote admins"
	case permission.ActionRemove:
		return "remove members"
	case permission.ActionUpdateAttributes:
		return "edit this group"
	case permission.ActionDeleteGroup:
		return "delete this group"
	default:
		return string(action)
	}
}
