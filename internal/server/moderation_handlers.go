package server

import (
	"commons/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPendingGroups godoc
// @Summary List groups awaiting moderation
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Group
// @Failure 403 {object} map[string]string
// @Router /admin/groups/pending [get]
func (s *Server) ListPendingGroups(c *fiber.Ctx) error {
	groups, err := s.groups.ListPendingGroups(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(groups)
}

func (s *Server) moderate(c *fiber.Ctx, decision service.ModerationDecision, reason string) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	group, err := s.groups.ModerateGroup(c.UserContext(), id, currentUserID(c), decision, reason)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(group)
}

// ApproveGroup godoc
// @Summary Approve a pending group
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} models.Group
// @Failure 422 {object} models.ErrorResponse
// @Router /admin/groups/{id}/approve [post]
func (s *Server) ApproveGroup(c *fiber.Ctx) error {
	return s.moderate(c, service.DecisionApprove, "")
}

// RejectGroup godoc
// @Summary Reject a pending group
// @Description A non-empty reason is required and is shown to the creator.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} models.Group
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /admin/groups/{id}/reject [post]
func (s *Server) RejectGroup(c *fiber.Ctx) error {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	return s.moderate(c, service.DecisionReject, req.Reason)
}
