package handlers

import (
	"log"
	"strings"

	"bakehouse/internal/models"
	"bakehouse/internal/repositories"
	"bakehouse/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles HTTP requests for contact messages.
type MessageHandler struct {
	service  *services.MessageService
	validate *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the contact-form route.
func (h *MessageHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Post("/messages", h.HandleSubmitMessage)
}

// RegisterAdminRoutes registers the inbox management routes.
func (h *MessageHandler) RegisterAdminRoutes(router fiber.Router) {
	messageRoutes := router.Group("/messages")
	messageRoutes.Get("/", h.HandleGetMessages)
	messageRoutes.Get("/stats", h.HandleGetStats)
	messageRoutes.Patch("/:id/status", h.HandleUpdateStatus)
	messageRoutes.Post("/:id/reply", h.HandleReply)
}

// HandleSubmitMessage stores a contact-form submission.
func (h *MessageHandler) HandleSubmitMessage(c *fiber.Ctx) error {
	var message models.Message
	if err := c.BodyParser(&message); err != nil {
		log.Printf("Error parsing contact message body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(message); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.SubmitMessage(&message); err != nil {
		log.Printf("Error submitting contact message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit message",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleGetMessages lists messages with optional ?status= and ?priority=
// filters (admin).
func (h *MessageHandler) HandleGetMessages(c *fiber.Ctx) error {
	filter := repositories.MessageFilter{
		Status:   models.MessageStatus(c.Query("status")),
		Priority: models.MessagePriority(c.Query("priority")),
	}

	messages, err := h.service.GetMessages(filter)
	if err != nil {
		log.Printf("Error getting messages: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve messages",
			"error":   err.Error(),
		})
	}
	return c.JSON(messages)
}

// HandleGetStats returns the inbox counters (admin).
func (h *MessageHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		log.Printf("Error getting message stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve message stats",
			"error":   err.Error(),
		})
	}
	return c.JSON(stats)
}

// UpdateMessageStatusRequest carries the target message status.
type UpdateMessageStatusRequest struct {
	Status models.MessageStatus `json:"status"`
}

// HandleUpdateStatus moves a message to a new handling status (admin).
func (h *MessageHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	messageID := c.Params("id")
	var req UpdateMessageStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	message, err := h.service.UpdateStatus(messageID, req.Status)
	if err != nil {
		log.Printf("Error updating status for message %s: %v", messageID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Message not found",
			})
		}
		if strings.Contains(err.Error(), "illegal message status transition") ||
			strings.Contains(err.Error(), "unknown message status") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid status transition",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update message status",
			"error":   err.Error(),
		})
	}
	return c.JSON(message)
}

// ReplyRequest carries an admin reply to a message.
type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,min=1,max=5000"`
}

// HandleReply records an admin reply and marks the message replied.
func (h *MessageHandler) HandleReply(c *fiber.Ctx) error {
	messageID := c.Params("id")
	var req ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	repliedBy, _ := c.Locals("email").(string)
	message, err := h.service.Reply(messageID, req.Reply, repliedBy)
	if err != nil {
		log.Printf("Error replying to message %s: %v", messageID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Message not found",
			})
		}
		if strings.Contains(err.Error(), "illegal message status transition") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Message can no longer be replied to",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save reply",
			"error":   err.Error(),
		})
	}
	return c.JSON(message)
}
