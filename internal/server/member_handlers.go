package server

import (
	"github.com/gofiber/fiber/v2"
)

// JoinGroup godoc
// @Summary Join a group
// @Description Joins an approved open group as a member.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 201 {object} models.GroupMembership
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /groups/{id}/join [post]
func (s *Server) JoinGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	membership, err := s.groups.Join(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(membership)
}

// LeaveGroup godoc
// @Summary Leave a group
// @Tags members
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 204
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /groups/{id}/leave [post]
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.groups.Leave(c.UserContext(), id, currentUserID(c)); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMembers godoc
// @Summary List members
// @Description Members only. The creator comes first, then members by join time.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {array} service.MemberView
// @Failure 403 {object} models.ErrorResponse
// @Router /groups/{id}/members [get]
func (s *Server) ListMembers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	members, err := s.groups.ListMembers(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(members)
}

// memberAction parses :id and :userId and runs one creator-only roster change.
func (s *Server) memberAction(c *fiber.Ctx, fn func(groupID, actorID, targetID uint) (any, error)) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	out, err := fn(groupID, currentUserID(c), targetID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(out)
}

// PromoteMember godoc
// @Summary Promote a member to admin
// @Description Creator-only. A group has at most two admins besides its creator.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 200 {object} service.GroupSnapshot
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /groups/{id}/admins/{userId} [post]
func (s *Server) PromoteMember(c *fiber.Ctx) error {
	return s.memberAction(c, func(groupID, actorID, targetID uint) (any, error) {
		return s.groups.Promote(c.UserContext(), groupID, actorID, targetID)
	})
}

// DemoteMember godoc
// @Summary Demote an admin to member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 200 {object} service.GroupSnapshot
// @Failure 422 {object} models.ErrorResponse
// @Router /groups/{id}/admins/{userId} [delete]
func (s *Server) DemoteMember(c *fiber.Ctx) error {
	return s.memberAction(c, func(groupID, actorID, targetID uint) (any, error) {
		return s.groups.Demote(c.UserContext(), groupID, actorID, targetID)
	})
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 200 {object} service.GroupSnapshot
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /groups/{id}/members/{userId} [delete]
func (s *Server) RemoveMember(c *fiber.Ctx) error {
	return s.memberAction(c, func(groupID, actorID, targetID uint) (any, error) {
		return s.groups.Remove(c.UserContext(), groupID, actorID, targetID)
	})
}

// InviteMember godoc
// @Summary Invite a user
// @Description Adds the user directly as a member. Members may invite only when the group allows it.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 201 {object} models.GroupMembership
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /groups/{id}/invites/{userId} [post]
func (s *Server) InviteMember(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	membership, err := s.groups.Invite(c.UserContext(), groupID, currentUserID(c), targetID)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(membership)
}

// RequestJoin godoc
// @Summary Request to join
// @Description Files a join request on a group that requires approval. Repeating it returns the pending request.
// @Tags join-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 201 {object} models.GroupJoinRequest
// @Failure 422 {object} models.ErrorResponse
// @Router /groups/{id}/join-requests [post]
func (s *Server) RequestJoin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Note string `json:"note"`
	}
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return nil
		}
	}
	jr, err := s.groups.RequestJoin(c.UserContext(), id, currentUserID(c), req.Note)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(jr)
}

// ListJoinRequests godoc
// @Summary List pending join requests
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {array} models.GroupJoinRequest
// @Failure 403 {object} models.ErrorResponse
// @Router /groups/{id}/join-requests [get]
func (s *Server) ListJoinRequests(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	requests, err := s.groups.ListJoinRequests(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(requests)
}

func (s *Server) reviewJoinRequest(c *fiber.Ctx, accept bool) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}
	jr, err := s.groups.ReviewJoinRequest(c.UserContext(), groupID, currentUserID(c), requestID, accept)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(jr)
}

// AcceptJoinRequest godoc
// @Summary Accept a join request
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param requestId path int true "Request ID"
// @Success 200 {object} models.GroupJoinRequest
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /groups/{id}/join-requests/{requestId}/accept [post]
func (s *Server) AcceptJoinRequest(c *fiber.Ctx) error {
	return s.reviewJoinRequest(c, true)
}

// DeclineJoinRequest godoc
// @Summary Decline a join request
// @Tags join-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param requestId path int true "Request ID"
// @Success 200 {object} models.GroupJoinRequest
// @Failure 422 {object} models.ErrorResponse
// @Router /groups/{id}/join-requests/{requestId}/decline [post]
func (s *Server) DeclineJoinRequest(c *fiber.Ctx) error {
	return s.reviewJoinRequest(c, false)
}
