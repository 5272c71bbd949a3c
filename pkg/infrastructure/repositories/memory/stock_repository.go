package memory

import (
	"fmt"

	"github.com/vsinha/assembler/pkg/domain/entities"
	"github.com/vsinha/assembler/pkg/domain/repositories"
)

// StockRepository provides in-memory stock accounting. Per-size totals are
// kept alongside the per-part counts so capacity checks are O(1).
type StockRepository struct {
	parts        map[entities.Part]entities.Quantity
	totalPerSize map[entities.Size]entities.Quantity
}

// NewStockRepository creates an empty in-memory stock repository
func NewStockRepository() *StockRepository {
	totals := make(map[entities.Size]entities.Quantity, len(entities.Sizes))
	for _, size := range entities.Sizes {
		totals[size] = 0
	}
	return &StockRepository{
		parts:        make(map[entities.Part]entities.Quantity),
		totalPerSize: totals,
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// Add puts amount units of part into stock
func (r *StockRepository) Add(part entities.Part, amount entities.Quantity) error {
	if amount < 1 {
		return fmt.Errorf("%w: cannot add %d of %s, must add at least one", entities.ErrInvalidAmount, amount, part)
	}
	if !part.Size.Valid() {
		return fmt.Errorf("%w: part %s", entities.ErrUnsupportedSize, part)
	}

	r.parts[part] += amount
	r.totalPerSize[part.Size] += amount
	return nil
}

// Remove takes amount units of part out of stock. Availability is checked
// before anything is mutated.
func (r *StockRepository) Remove(part entities.Part, amount entities.Quantity) error {
	if amount < 1 {
		return fmt.Errorf("%w: cannot remove %d of %s, must remove at least one", entities.ErrInvalidAmount, amount, part)
	}

	available := r.parts[part]
	if amount > available {
		return fmt.Errorf("%w: cannot remove %d of %s, only %d in stock",
			entities.ErrInsufficientStock, amount, part, available)
	}

	remaining := available - amount
	if remaining == 0 {
		delete(r.parts, part)
	} else {
		r.parts[part] = remaining
	}
	r.totalPerSize[part.Size] -= amount
	return nil
}

// QuantityOf returns the stock count for all parts, one size class or one part
func (r *StockRepository) QuantityOf(selector entities.StockSelector) (entities.Quantity, error) {
	switch sel := selector.(type) {
	case entities.Size:
		if !sel.Valid() {
			return 0, fmt.Errorf("%w: %d", entities.ErrUnsupportedSize, int(sel))
		}
		return r.totalPerSize[sel], nil
	case entities.Part:
		return r.parts[sel], nil
	case nil:
		return 0, fmt.Errorf("stock selector cannot be nil")
	default:
		if selector == entities.AllParts {
			var total entities.Quantity
			for _, qty := range r.parts {
				total += qty
			}
			return total, nil
		}
		return 0, fmt.Errorf("unsupported stock selector %T", selector)
	}
}

// Parts returns all parts with a positive count in map order
func (r *StockRepository) Parts() []entities.Part {
	parts := make([]entities.Part, 0, len(r.parts))
	for part := range r.parts {
		parts = append(parts, part)
	}
	return parts
}

// MostStocked returns the part with the highest count within the given sizes
// (all sizes when none are passed). Ties go to the lowest tag, then the
// smaller size, so the result does not depend on map order.
func (r *StockRepository) MostStocked(sizes ...entities.Size) (entities.Part, bool) {
	var (
		best    entities.Part
		bestQty entities.Quantity
		found   bool
	)

	for part, qty := range r.parts {
		if len(sizes) > 0 && !containsSize(sizes, part.Size) {
			continue
		}
		if !found || qty > bestQty || (qty == bestQty && part.Less(best)) {
			best = part
			bestQty = qty
			found = true
		}
	}

	return best, found
}

// Snapshot returns a copy of the per-part counts
func (r *StockRepository) Snapshot() map[entities.Part]entities.Quantity {
	snapshot := make(map[entities.Part]entities.Quantity, len(r.parts))
	for part, qty := range r.parts {
		snapshot[part] = qty
	}
	return snapshot
}

func containsSize(sizes []entities.Size, size entities.Size) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}
