package service

import (
	"context"
	"strings"
	"time"

	"commons/internal/lock"
	"commons/internal/models"
	"commons/internal/notifications"
	"commons/internal/permission"
	"commons/internal/repository"
	"commons/internal/validation"
)

// MemberView is one line of a group's member list.
type MemberView struct {
	UserID   uint             `json:"user_id"`
	Role     models.GroupRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}

// mutate runs fn on the group's membership critical section with a ledger
// bound to the transaction.
func (s *GroupService) mutate(ctx context.Context, groupID uint, fn func(l *ledger) error) error {
	return s.inGroup(ctx, groupID, []string{lock.MembersKey(groupID)}, func(tx repository.GroupRepository, snap *GroupSnapshot) error {
		return fn(&ledger{tx: tx, snap: snap, now: s.now})
	})
}

// Join adds userID as a Member of an approved group with room to spare.
func (s *GroupService) Join(ctx context.Context, groupID, userID uint) (membership *models.GroupMembership, err error) {
	ctx, finish := s.begin(ctx, "join", groupID, userID)
	defer func() { finish(err) }()

	err = s.mutate(ctx, groupID, func(l *ledger) error {
		if err := l.snap.authorize(permission.ActionJoin, userID); err != nil {
			return err
		}
		if l.snap.Group.Settings.RequireApproval {
			return models.NewPermissionDeniedError("this group requires approval; send a join request instead")
		}
		membership, err = l.add(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishGroup(ctx, s.event(notifications.EventMemberJoined, groupID, userID, nil))
	return membership, nil
}

// Leave removes userID's own membership. The creator must delete instead.
func (s *GroupService) Leave(ctx context.Context, groupID, userID uint) (err error) {
	ctx, finish := s.begin(ctx, "leave", groupID, userID)
	defer func() { finish(err) }()

	err = s.mutate(ctx, groupID, func(l *ledger) error {
		if err := l.snap.authorize(permission.ActionLeave, userID); err != nil {
			return err
		}
		return l.remove(ctx, userID)
	})
	if err != nil {
		return err
	}
	s.publishGroup(ctx, s.event(notifications.EventMemberLeft, groupID, userID, nil))
	return nil
}

// Promote makes a member an admin.
func (s *GroupService) Promote(ctx context.Context, groupID, actorID, targetID uint) (snap *GroupSnapshot, err error) {
	ctx, finish := s.begin(ctx, "promote", groupID, actorID)
	defer func() { finish(err) }()

	err = s.mutate(ctx, groupID, func(l *ledger) error {
		if err := l.snap.authorize(permission.ActionPromote, actorID); err != nil {
			return err
		}
		if err := l.promote(ctx, targetID); err != nil {
			return err
		}
		snap = l.snap
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishGroup(ctx, s.event(notifications.EventMemberPromoted, groupID, actorID, map[string]interface{}{
		"user_id": targetID,
	}))
	return snap, nil
}

// Demote returns an admin to Member.
func (s *GroupService) Demote(ctx context.Context, groupID, actorID, targetID uint) (snap *GroupSnapshot, err error) {
	ctx, finish := s.begin(ctx, "demote", groupID, actorID)
	defer func() { finish(err) }()

	err = s.mutate(ctx, groupID, func(l *ledger) error {
		if err := l.snap.authorize(permission.ActionDemote, actorID); err != nil {
			return err
		}
		if err := l.demote(ctx, targetID); err != nil {
			return err
		}
		snap = l.snap
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishGroup(ctx, s.event(notifications.EventMemberDemoted, groupID, actorID, map[string]interface{}{
		"user_id": targetID,
	}))
	return snap, nil
}

// Remove drops any non-creator from the group in one step, admin or not.
func (s *GroupService) Remove(ctx context.Context, groupID, actorID, targetID uint) (snap *GroupSnapshot, err error) {
	ctx, finish := s.begin(ctx, "remove", groupID, actorID)
	defer func() { finish(err) }()

	err = s.mutate(ctx, groupID, func(l *ledger) error {
		if err := l.snap.authorize(permission.ActionRemove, actorID); err != nil {
			return err
		}
		if err := l.remove(ctx, targetID); err != nil {
			return err
		}
		snap = l.snap
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishGroup(ctx, s.event(notifications.EventMemberRemoved, groupID, actorID, map[string]interface{}{
		"user_id": targetID,
	}))
	return snap, nil
}

// Invite adds targetID directly as a Member. Creator and admins may always
// invite; members only when the group allows it.
func (s *GroupService) Invite(ctx context.Context, groupID, actorID, targetID uint) (membership *models.GroupMembership, err error) {
	ctx, finish := s.begin(ctx, "invite", groupID, actorID)
	defer func() { finish(err) }()

	if targetID == 0 {
		return nil, models.NewValidationError("invitee is required")
	}
	err = s.mutate(ctx, groupID, func(l *ledger) error {
		if err := l.snap.authorize(permission.ActionInvite, actorID); err != nil {
			return err
		}
		membership, err = l.add(ctx, targetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	ev := s.event(notifications.EventMemberInvited, groupID, actorID, map[string]interface{}{
		"user_id": targetID,
	})
	s.publishGroup(ctx, ev)
	s.publishUser(ctx, targetID, ev)
	return membership, nil
}

// RequestJoin files a pending join request for a group that requires
// approval. An existing pending request is returned unchanged.
func (s *GroupService) RequestJoin(ctx context.Context, groupID, userID uint, note string) (req *models.GroupJoinRequest, err error) {
	ctx, finish := s.begin(ctx, "request_join", groupID, userID)
	defer func() { finish(err) }()

	note = strings.TrimSpace(note)
	if err := validation.ValidateJoinRequestNote(note); err != nil {
		return nil, err
	}

	created := false
	err = s.mutate(ctx, groupID, func(l *ledger) error {
		if err := l.snap.authorize(permission.ActionJoin, userID); err != nil {
			return err
		}
		if !l.snap.Group.Settings.RequireApproval {
			return models.NewInvalidStateError("this group does not require approval; join directly")
		}
		existing, err := l.tx.GetPendingJoinRequest(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			req = existing
			return nil
		}
		req = &models.GroupJoinRequest{
			GroupID: groupID,
			UserID:  userID,
			Status:  models.JoinRequestStatusPending,
			Note:    note,
		}
		created = true
		return l.tx.CreateJoinRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.publishGroup(ctx, s.event(notifications.EventJoinRequested, groupID, userID, map[string]interface{}{
			"request_id": req.ID,
		}))
	}
	return req, nil
}

// ReviewJoinRequest accepts or declines a pending request. Accepting performs
// the join in the same critical section, so capacity is checked against the
// current member list.
func (s *GroupService) ReviewJoinRequest(ctx context.Context, groupID, actorID, requestID uint, accept bool) (req *models.GroupJoinRequest, err error) {
	ctx, finish := s.begin(ctx, "review_join_request", groupID, actorID)
	defer func() { finish(err) }()

	err = s.mutate(ctx, groupID, func(l *ledger) error {
		if err := l.snap.authorize(permission.ActionReviewJoinRequest, actorID); err != nil {
			return err
		}
		req, err = l.tx.GetJoinRequest(ctx, groupID, requestID)
		if err != nil {
			return err
		}
		if req.Status != models.JoinRequestStatusPending {
			return models.NewInvalidStateError("join request has already been " + string(req.Status))
		}
		if accept {
			// A requester who got in another way has the request closed as is.
			if !l.snap.IsMember(req.UserID) {
				if _, err := l.add(ctx, req.UserID); err != nil {
					return err
				}
			}
			req.Status = models.JoinRequestStatusAccepted
		} else {
			req.Status = models.JoinRequestStatusDeclined
		}
		req.ReviewedBy = &actorID
		return l.tx.SaveJoinRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	evType := notifications.EventJoinRequestDeclined
	if accept {
		evType = notifications.EventJoinRequestAccepted
	}
	ev := s.event(evType, groupID, actorID, map[string]interface{}{
		"request_id": req.ID,
		"user_id":    req.UserID,
	})
	s.publishGroup(ctx, ev)
	s.publishUser(ctx, req.UserID, ev)
	return req, nil
}

// ListJoinRequests returns pending requests to the creator and admins.
func (s *GroupService) ListJoinRequests(ctx context.Context, groupID, actorID uint) ([]models.GroupJoinRequest, error) {
	snap, err := s.readSnapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := snap.authorize(permission.ActionReviewJoinRequest, actorID); err != nil {
		return nil, err
	}
	return s.repo.ListPendingJoinRequests(ctx, groupID)
}

// ListMembers returns the creator first, then stored members by join time.
// Only members may list.
func (s *GroupService) ListMembers(ctx context.Context, groupID, requesterID uint) ([]MemberView, error) {
	snap, err := s.readSnapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := snap.authorize(permission.ActionViewMessages, requesterID); err != nil {
		return nil, err
	}

	out := make([]MemberView, 0, len(snap.Members)+1)
	out = append(out, MemberView{
		UserID:   snap.Group.CreatorID,
		Role:     models.GroupRoleCreator,
		JoinedAt: snap.Group.CreatedAt,
	})
	for _, m := range snap.Members {
		out = append(out, MemberView{UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt})
	}
	return out, nil
}

// readSnapshot loads a snapshot for read-only checks without taking the lock.
func (s *GroupService) readSnapshot(ctx context.Context, groupID uint) (*GroupSnapshot, error) {
	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMemberships(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupSnapshot{Group: *group, Members: members}, nil
}
