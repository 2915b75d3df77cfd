package server

import (
	"commons/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListMessages godoc
// @Summary List group messages
// @Description Members only. Pages run oldest first; pass next_page_token back as page_token to continue.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param page_token query string false "Opaque token from a previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} service.MessagePage
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /groups/{id}/messages [get]
func (s *Server) ListMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.messages.List(c.UserContext(), service.ListMessagesInput{
		GroupID:     id,
		RequesterID: currentUserID(c),
		PageToken:   c.Query("page_token"),
		PageSize:    c.QueryInt("limit", 0),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// PostMessage godoc
// @Summary Post a message
// @Description Creator and admins only.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param message body service.PostMessageInput true "Message"
// @Success 201 {object} models.GroupMessage
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /groups/{id}/messages [post]
func (s *Server) PostMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var input service.PostMessageInput
	if err := parseBody(c, &input); err != nil {
		return nil
	}
	input.GroupID = id
	input.SenderID = currentUserID(c)

	msg, err := s.messages.Post(c.UserContext(), input)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
