package handlers

import (
	"log"
	"strings"

	"bakehouse/internal/cart"
	"bakehouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the per-session cart. The cart store
// is injected; the session key is the authenticated user ID.
type CartHandler struct {
	store          *cart.Store
	productService *services.ProductService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store *cart.Store, productService *services.ProductService) *CartHandler {
	return &CartHandler{
		store:          store,
		productService: productService,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// HandleGetCart returns the current cart snapshot.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.store.Get(sessionID(c)))
}

// AddItemRequest names the product to add one unit of.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

// HandleAddItem adds one unit of a catalog product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	product, err := h.productService.GetProductByID(req.ProductID)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}

	return c.JSON(h.store.AddItem(sessionID(c), product))
}

// UpdateQuantityRequest carries the new quantity for a cart line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets the quantity of a cart line. A quantity of zero
// or below removes the line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	return c.JSON(h.store.UpdateQuantity(sessionID(c), c.Params("productId"), req.Quantity))
}

// HandleRemoveItem removes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	return c.JSON(h.store.RemoveItem(sessionID(c), c.Params("productId")))
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	return c.JSON(h.store.Clear(sessionID(c)))
}
