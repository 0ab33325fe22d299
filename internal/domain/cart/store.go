// internal/domain/cart/store.go
package cart

import (
	"sync"
	"time"

	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// Cart holds the selected products for one session. It lives only in
// memory: carts are deliberately ephemeral and do not survive a restart,
// unlike the auth session. Mutation and totals recomputation happen under
// one lock, so no caller can observe totals that disagree with the lines.
type Cart struct {
	mu        sync.Mutex
	sessionID string
	lines     []Line
	totals    Totals
	updatedAt time.Time
}

// AddItem merges quantity into an existing line for the same product id,
// or appends a new line. Quantities below 1 default to 1. Inventory is
// not checked here; availability is the inventory endpoint's concern.
func (c *Cart) AddItem(product loyalty.Product, quantity int) Snapshot {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		c.lines = append(c.lines, Line{
			ProductID:   product.ID,
			Name:        product.Name,
			Description: product.Description,
			PointsCost:  product.PointsCost,
			ProductType: product.ProductType,
			Category:    product.Category,
			Brand:       product.Brand,
			ImageURL:    product.ImageURL,
			Quantity:    quantity,
			AddedAt:     time.Now().UTC(),
		})
	}

	return c.recompute()
}

// UpdateQuantity sets a line's quantity to an absolute value. A quantity
// of zero or less removes the line entirely.
func (c *Cart) UpdateQuantity(productID string, quantity int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		return c.recompute()
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			break
		}
	}
	return c.recompute()
}

// RemoveItem filters the line out. Removing an absent line is a no-op.
func (c *Cart) RemoveItem(productID string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
	return c.recompute()
}

// Clear resets the cart to the empty state
func (c *Cart) Clear() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	return c.recompute()
}

// Snapshot returns a consistent copy of the cart
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) removeLocked(productID string) {
	filtered := c.lines[:0]
	for _, line := range c.lines {
		if line.ProductID != productID {
			filtered = append(filtered, line)
		}
	}
	c.lines = filtered
}

// recompute derives the totals from the lines while still holding the lock
func (c *Cart) recompute() Snapshot {
	c.totals = computeTotals(c.lines)
	c.updatedAt = time.Now().UTC()
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() Snapshot {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return Snapshot{
		SessionID: c.sessionID,
		Lines:     lines,
		Totals:    c.totals,
		UpdatedAt: c.updatedAt,
	}
}

// Store maps session ids to carts. It is owned by the composition root
// and injected where needed; there are no package-level store globals.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore creates an empty cart registry
func NewStore() *Store {
	return &Store{
		carts: make(map[string]*Cart),
	}
}

// Get returns the cart for a session, creating it on first use
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{sessionID: sessionID, updatedAt: time.Now().UTC()}
		s.carts[sessionID] = c
	}
	return c
}

// Drop discards a session's cart, e.g. on logout
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
