package server

import (
	"commons/internal/repository"
	"commons/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListGroups godoc
// @Summary List approved groups
// @Description Discovery listing of approved public groups, newest first.
// @Tags groups
// @Produce json
// @Param category query string false "Category"
// @Param city query string false "City"
// @Param tag query string false "Tag"
// @Param q query string false "Name search"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Group
// @Failure 400 {object} models.ErrorResponse
// @Router /groups [get]
func (s *Server) ListGroups(c *fiber.Ctx) error {
	filter := repository.GroupFilter{
		Category: c.Query("category"),
		City:     c.Query("city"),
		Tag:      c.Query("tag"),
		Query:    c.Query("q"),
		Limit:    c.QueryInt("limit", 0),
		Offset:   c.QueryInt("offset", 0),
	}
	groups, err := s.groups.ListApprovedGroups(c.UserContext(), filter)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(groups)
}

// GetGroup godoc
// @Summary Get a group
// @Description Returns a group the caller may see. Unapproved and private groups look missing to outsiders.
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} models.Group
// @Failure 404 {object} models.ErrorResponse
// @Router /groups/{id} [get]
func (s *Server) GetGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	group, err := s.groups.GetGroup(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(group)
}

// GetMyGroups godoc
// @Summary List my groups
// @Description Groups the caller created or belongs to, in any lifecycle state.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Group
// @Router /groups/me [get]
func (s *Server) GetMyGroups(c *fiber.Ctx) error {
	groups, err := s.groups.ListGroupsForUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(groups)
}

// CreateGroup godoc
// @Summary Create a group
// @Description Creates a group in the pending state. The caller becomes its creator.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param group body service.CreateGroupInput true "Group attributes"
// @Success 201 {object} models.Group
// @Failure 400 {object} models.ErrorResponse
// @Router /groups [post]
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var input service.CreateGroupInput
	if err := parseBody(c, &input); err != nil {
		return nil
	}
	group, err := s.groups.CreateGroup(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// UpdateGroup godoc
// @Summary Update a group
// @Description Creator-only partial update. Omitted fields are unchanged.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param patch body service.UpdateGroupInput true "Fields to change"
// @Success 200 {object} models.Group
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /groups/{id} [patch]
func (s *Server) UpdateGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var patch service.UpdateGroupInput
	if err := parseBody(c, &patch); err != nil {
		return nil
	}
	group, err := s.groups.UpdateGroupAttributes(c.UserContext(), id, currentUserID(c), patch)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(group)
}

// DeleteGroup godoc
// @Summary Delete a group
// @Description Creator-only. Removes the group with its members, messages and join requests.
// @Tags groups
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /groups/{id} [delete]
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.groups.DeleteGroup(c.UserContext(), id, currentUserID(c)); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
