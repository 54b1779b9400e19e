package handlers

import (
	"log"
	"strings"

	"bakehouse/internal/models"
	"bakehouse/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TestimonialHandler handles HTTP requests for testimonials.
type TestimonialHandler struct {
	service  *services.TestimonialService
	validate *validator.Validate
}

// NewTestimonialHandler creates a new TestimonialHandler.
func NewTestimonialHandler(service *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the public testimonial listing.
func (h *TestimonialHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/testimonials", h.HandleGetTestimonials)
}

// RegisterAdminRoutes registers the testimonial management routes.
func (h *TestimonialHandler) RegisterAdminRoutes(router fiber.Router) {
	testimonialRoutes := router.Group("/testimonials")
	testimonialRoutes.Post("/", h.HandleCreateTestimonial)
	testimonialRoutes.Delete("/:id", h.HandleDeleteTestimonial)
}

// HandleGetTestimonials lists testimonials for the home page.
func (h *TestimonialHandler) HandleGetTestimonials(c *fiber.Ctx) error {
	testimonials, err := h.service.GetTestimonials()
	if err != nil {
		log.Printf("Error getting testimonials: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve testimonials",
			"error":   err.Error(),
		})
	}
	return c.JSON(testimonials)
}

// HandleCreateTestimonial stores a new testimonial (admin).
func (h *TestimonialHandler) HandleCreateTestimonial(c *fiber.Ctx) error {
	var testimonial models.Testimonial
	if err := c.BodyParser(&testimonial); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(testimonial); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreateTestimonial(&testimonial); err != nil {
		log.Printf("Error creating testimonial: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create testimonial",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(testimonial)
}

// HandleDeleteTestimonial removes a testimonial (admin).
func (h *TestimonialHandler) HandleDeleteTestimonial(c *fiber.Ctx) error {
	testimonialID := c.Params("id")
	if err := h.service.DeleteTestimonial(testimonialID); err != nil {
		log.Printf("Error deleting testimonial %s: %v", testimonialID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Testimonial not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete testimonial",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Testimonial deleted successfully",
	})
}
