// Package permission decides whether an actor may perform an action on a group.
//
// Evaluate is pure: it reads only its Input and never touches storage. Callers
// build the Input from a snapshot taken inside the group's critical section.
package permission

import "commons/internal/models"

// Role is the actor's standing in a group, derived from the group record and
// the actor's membership row.
type Role int

const (
	RoleNone Role = iota
	RoleMember
	RoleAdmin
	RoleCreator
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	case RoleCreator:
		return "creator"
	default:
		return "none"
	}
}

// Action is something an actor attempts on a group.
type Action string

const (
	ActionPostMessage       Action = "post_message"
	ActionViewMessages      Action = "view_messages"
	ActionPromote           Action = "promote"
	ActionDemote            Action = "demote"
	ActionRemove            Action = "remove"
	ActionUpdateAttributes  Action = "update_attributes"
	ActionDeleteGroup       Action = "delete_group"
	ActionJoin              Action = "join"
	ActionLeave             Action = "leave"
	ActionInvite            Action = "invite"
	ActionReviewJoinRequest Action = "review_join_request"
	ActionViewGroup         Action = "view_group"
)

// Reason explains a denial.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonNotApproved       Reason = "group_not_approved"
	ReasonRole              Reason = "insufficient_role"
	ReasonNotMember         Reason = "not_member"
	ReasonAlreadyMember     Reason = "already_member"
	ReasonGroupFull         Reason = "group_full"
	ReasonCreatorMustDelete Reason = "creator_must_delete"
	ReasonInvitesDisabled   Reason = "member_invites_disabled"
	ReasonPrivateGroup      Reason = "private_group"
	ReasonUnknownAction     Reason = "unknown_action"
)

// Input is everything the decision depends on.
type Input struct {
	Action             Action
	Role               Role
	Lifecycle          models.GroupLifecycle
	Visibility         models.GroupVisibility
	GroupFull          bool
	AllowMemberInvites bool
}

// Decision is the evaluator's verdict.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision { return Decision{Allowed: true} }

func deny(r Reason) Decision { return Decision{Reason: r} }

// rule decides one action for one role.
type rule func(in Input) Decision

var (
	allowed rule = func(Input) Decision { return allow() }
	byRole  rule = func(Input) Decision { return deny(ReasonRole) }
	notIn   rule = func(Input) Decision { return deny(ReasonNotMember) }
	already rule = func(Input) Decision { return deny(ReasonAlreadyMember) }
)

// table is the closed set of {action × role} rules. A missing role entry for a
// known action denies with ReasonRole.
var table = map[Action]map[Role]rule{
	ActionPostMessage: {
		RoleCreator: allowed,
		RoleAdmin:   allowed,
		RoleMember:  byRole,
		RoleNone:    notIn,
	},
	ActionViewMessages: {
		RoleCreator: allowed,
		RoleAdmin:   allowed,
		RoleMember:  allowed,
		RoleNone:    notIn,
	},
	ActionPromote:          creatorOnly(),
	ActionDemote:           creatorOnly(),
	ActionRemove:           creatorOnly(),
	ActionUpdateAttributes: creatorOnly(),
	ActionDeleteGroup:      creatorOnly(),
	ActionJoin: {
		RoleCreator: already,
		RoleAdmin:   already,
		RoleMember:  already,
		RoleNone: func(in Input) Decision {
			if in.GroupFull {
				return deny(ReasonGroupFull)
			}
			return allow()
		},
	},
	ActionLeave: {
		RoleCreator: func(Input) Decision { return deny(ReasonCreatorMustDelete) },
		RoleAdmin:   allowed,
		RoleMember:  allowed,
		RoleNone:    notIn,
	},
	ActionInvite: {
		RoleCreator: allowed,
		RoleAdmin:   allowed,
		RoleMember: func(in Input) Decision {
			if !in.AllowMemberInvites {
				return deny(ReasonInvitesDisabled)
			}
			return allow()
		},
		RoleNone: notIn,
	},
	ActionReviewJoinRequest: {
		RoleCreator: allowed,
		RoleAdmin:   allowed,
		RoleMember:  byRole,
		RoleNone:    notIn,
	},
	ActionViewGroup: {
		RoleCreator: allowed,
		RoleAdmin:   allowed,
		RoleMember:  allowed,
		RoleNone: func(in Input) Decision {
			if in.Visibility == models.GroupVisibilityPrivate {
				return deny(ReasonPrivateGroup)
			}
			return allow()
		},
	},
}

func creatorOnly() map[Role]rule {
	return map[Role]rule{
		RoleCreator: allowed,
		RoleAdmin:   byRole,
		RoleMember:  byRole,
		RoleNone:    byRole,
	}
}

// Evaluate applies the lifecycle gate, then the role table.
func Evaluate(in Input) Decision {
	roles, ok := table[in.Action]
	if !ok {
		return deny(ReasonUnknownAction)
	}
	if in.Role != RoleCreator && in.Lifecycle != models.GroupLifecycleApproved {
		return deny(ReasonNotApproved)
	}
	r, ok := roles[in.Role]
	if !ok {
		return deny(ReasonRole)
	}
	return r(in)
}

// RoleOf derives the actor's role from the group and the actor's membership row
// (nil when the actor has none).
func RoleOf(group *models.Group, userID uint, membership *models.GroupMembership) Role {
	if group != nil && group.CreatorID == userID {
		return RoleCreator
	}
	if membership == nil {
		return RoleNone
	}
	switch membership.Role {
	case models.GroupRoleAdmin:
		return RoleAdmin
	case models.GroupRoleMember:
		return RoleMember
	default:
		return RoleNone
	}
}
