package handlers

import (
	"log"
	"strings"

	"bakehouse/internal/models"
	"bakehouse/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only review routes.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products/:id/reviews", h.HandleGetProductReviews)
	router.Get("/products/:id/rating", h.HandleGetRatingSummary)
}

// RegisterRoutes registers the authenticated review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/products/:id/reviews", h.HandleSubmitReview)
	router.Post("/reviews/:id/helpful", h.HandleMarkHelpful)
}

// HandleGetProductReviews lists the reviews of a product, newest first.
func (h *ReviewHandler) HandleGetProductReviews(c *fiber.Ctx) error {
	productID := c.Params("id")
	reviews, err := h.service.GetProductReviews(productID)
	if err != nil {
		log.Printf("Error getting reviews for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// HandleGetRatingSummary returns the review count and average rating.
func (h *ReviewHandler) HandleGetRatingSummary(c *fiber.Ctx) error {
	productID := c.Params("id")
	summary, err := h.service.GetRatingSummary(productID)
	if err != nil {
		log.Printf("Error getting rating summary for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve rating summary",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// SubmitReviewRequest is the review form payload.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,min=2,max=200"`
	Comment string `json:"comment" validate:"required,min=2,max=5000"`
}

// HandleSubmitReview stores a review from the authenticated user.
func (h *ReviewHandler) HandleSubmitReview(c *fiber.Ctx) error {
	var req SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	userID, _ := c.Locals("user_id").(string)
	authorName, _ := c.Locals("email").(string)
	review := models.Review{
		ProductID:  c.Params("id"),
		UserID:     userID,
		AuthorName: authorName,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
	}

	if err := h.service.SubmitReview(&review); err != nil {
		log.Printf("Error submitting review: %v", err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit review",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleMarkHelpful records a helpful vote on a review.
func (h *ReviewHandler) HandleMarkHelpful(c *fiber.Ctx) error {
	reviewID := c.Params("id")
	if err := h.service.MarkHelpful(reviewID); err != nil {
		log.Printf("Error marking review %s helpful: %v", reviewID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Review not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not record vote",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Vote recorded",
	})
}
