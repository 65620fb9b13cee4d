package handler

import (
	"github.com/gofiber/fiber/v2"
)

type sendMessageRequest struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

func (h *Handler) ListMessages(c *fiber.Ctx) error {
	return c.JSON(h.chat.Messages())
}

// SendMessage appends to the session log. A blank text is silently dropped
// (204), matching the chat input's behavior.
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Sender == "" {
		req.Sender = "You"
	}

	msg := h.chat.Send(req.Sender, req.Text)
	if msg == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
