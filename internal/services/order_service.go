package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"bakehouse/internal/cart"
	"bakehouse/internal/models"
	"bakehouse/internal/repositories"
	"bakehouse/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderEventPublisher publishes order lifecycle events. *rabbitmq.Client
// satisfies this; tests substitute a mock.
type OrderEventPublisher interface {
	PublishOrderEvent(eventType string, body []byte) error
}

// CheckoutRequest carries the delivery details supplied at checkout.
type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required,min=5,max=500"`
	Phone           string `json:"phone" validate:"required,min=5,max=30"`
	Notes           string `json:"notes" validate:"omitempty,max=1000"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   OrderEventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetAllOrders retrieves all orders (admin view).
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves the orders of one customer.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// Checkout turns the cart lines into a pending order. Each line's product is
// re-read from the catalog so the order snapshots the current name and unit
// price; those snapshots never follow later product edits. Products marked
// out of stock reject the checkout, but no stock quantity is decremented —
// in_stock is a flag, not an inventory count.
func (s *OrderService) Checkout(userID string, lines []cart.Line, req CheckoutRequest) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("delivery address and phone are required")
	}

	var totalAmount float64
	var processedItems []models.OrderItem

	for _, line := range lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", line.ProductID, err)
		}
		if !product.InStock {
			return nil, fmt.Errorf("product %s is out of stock", product.Name)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("invalid quantity %d for product %s", line.Quantity, product.Name)
		}

		itemPrice := product.Price // Unit price at the time of order creation
		processedItems = append(processedItems, models.OrderItem{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     itemPrice,
		})
		totalAmount += itemPrice * float64(line.Quantity)
	}

	newOrder := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           processedItems,
		TotalAmount:     totalAmount,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent(rabbitmq.EventOrderCreated, map[string]interface{}{
		"order_id": newOrder.ID,
		"user_id":  newOrder.UserID,
		"status":   newOrder.Status,
		"total":    newOrder.TotalAmount,
	})

	return newOrder, nil
}

// UpdateOrderStatus moves an order to a new status. The transition table is
// consulted against the currently persisted status; illegal moves fail
// before anything is written, and a repository failure leaves the prior
// status in place.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	newStatus, err := order.Status.Transition(status)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(id, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now()

	s.publishEvent(rabbitmq.EventOrderStatusChanged, map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
	})

	return order, nil
}

// publishEvent fires an order event, logging rather than failing the caller
// when the broker is unavailable.
func (s *OrderService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.publisher.PublishOrderEvent(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", eventType, err)
	}
}
