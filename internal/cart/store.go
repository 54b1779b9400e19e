package cart

import (
	"sync"

	"bakehouse/internal/models"
)

// Store holds one cart per session key. The key is the authenticated user ID
// or an anonymous session ID supplied by the client. Carts live only in
// memory and are lost on restart, matching the session-scoped lifetime of a
// storefront cart. The store is handed to consumers explicitly rather than
// looked up from ambient state.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		carts: make(map[string]*Cart),
	}
}

// get returns the cart for the session, creating it if absent. Caller must
// hold the write lock.
func (s *Store) get(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

// AddItem adds one unit of the product to the session's cart.
func (s *Store) AddItem(sessionID string, product *models.Product) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(sessionID)
	c.AddItem(product)
	return snapshot(c)
}

// UpdateQuantity sets the quantity for a product line in the session's cart.
func (s *Store) UpdateQuantity(sessionID, productID string, quantity int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(sessionID)
	c.UpdateQuantity(productID, quantity)
	return snapshot(c)
}

// RemoveItem removes a product line from the session's cart.
func (s *Store) RemoveItem(sessionID, productID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(sessionID)
	c.RemoveItem(productID)
	return snapshot(c)
}

// Clear empties the session's cart.
func (s *Store) Clear(sessionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(sessionID)
	c.Clear()
	return snapshot(c)
}

// Get returns the current state of the session's cart without mutating it.
// A session with no cart yet reads as empty.
func (s *Store) Get(sessionID string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return Snapshot{Items: []Line{}}
	}
	return snapshot(c)
}

// Snapshot is a point-in-time read of one cart, with the derived totals
// computed from the lines.
type Snapshot struct {
	Items     []Line  `json:"items"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

func snapshot(c *Cart) Snapshot {
	return Snapshot{
		Items:     c.Items(),
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}
