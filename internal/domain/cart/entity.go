// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// Line is one selected product in a cart. Product fields are copied by
// value at add time; later catalog changes are not observed.
type Line struct {
	ProductID   string              `json:"productId"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	PointsCost  int                 `json:"pointsCost"`
	ProductType loyalty.ProductType `json:"productType"`
	Category    string              `json:"category,omitempty"`
	Brand       string              `json:"brand,omitempty"`
	ImageURL    string              `json:"imageUrl,omitempty"`
	Quantity    int                 `json:"quantity"`
	AddedAt     time.Time           `json:"addedAt"`
}

// LineTotal is the points cost of the whole line
func (l Line) LineTotal() int {
	return l.PointsCost * l.Quantity
}

// Totals are the derived cart sums. They are always recomputed from the
// lines; no code path mutates them independently.
type Totals struct {
	TotalItems  int `json:"totalItems"`
	TotalPoints int `json:"totalPoints"`
}

// computeTotals is the single fold that derives totals from lines
func computeTotals(lines []Line) Totals {
	var totals Totals
	for _, line := range lines {
		totals.TotalItems += line.Quantity
		totals.TotalPoints += line.PointsCost * line.Quantity
	}
	return totals
}

// Snapshot is a consistent copy of a cart's state
type Snapshot struct {
	SessionID string    `json:"sessionId,omitempty"`
	Lines     []Line    `json:"items"`
	Totals    Totals    `json:"totals"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPhysicalItems reports whether any line needs a shipping address
func (s Snapshot) HasPhysicalItems() bool {
	for _, line := range s.Lines {
		if line.ProductType == loyalty.ProductTypePhysical {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart has no lines
func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
