package memory

import (
	"fmt"

	"github.com/vsinha/assembler/pkg/domain/entities"
	"github.com/vsinha/assembler/pkg/domain/repositories"
)

// DesignRepository keeps designs in arrival order. A design that fires is
// rotated to the back rather than removed, so it can fire again later.
type DesignRepository struct {
	designs []*entities.Design

	// referenced is append-only: the union of named parts of every design
	// ever submitted.
	referenced map[entities.Part]struct{}
}

// NewDesignRepository creates an empty design queue
func NewDesignRepository(expectedDesigns int) *DesignRepository {
	return &DesignRepository{
		designs:    make([]*entities.Design, 0, expectedDesigns),
		referenced: make(map[entities.Part]struct{}),
	}
}

// Verify interface compliance
var _ repositories.DesignRepository = (*DesignRepository)(nil)

// LoadDesigns submits designs in order
func (r *DesignRepository) LoadDesigns(designs []*entities.Design) error {
	for _, design := range designs {
		if err := r.Submit(design); err != nil {
			return err
		}
	}
	return nil
}

// Submit appends a design to the end of the queue
func (r *DesignRepository) Submit(design *entities.Design) error {
	if design == nil {
		return fmt.Errorf("design cannot be nil")
	}
	for part := range design.Parts {
		r.referenced[part] = struct{}{}
	}
	r.designs = append(r.designs, design)
	return nil
}

// FindSatisfiable returns the earliest queued design that the stock can fulfill
func (r *DesignRepository) FindSatisfiable(
	stock repositories.StockRepository,
) (*entities.Design, int, bool, error) {
	for i, design := range r.designs {
		ok, err := canFulfill(design, stock)
		if err != nil {
			return nil, -1, false, fmt.Errorf("failed to check design %s: %w", design.Name, err)
		}
		if ok {
			return design, i, true, nil
		}
	}
	return nil, -1, false, nil
}

// TakeForFulfillment moves the design at index to the back of the queue and returns it
func (r *DesignRepository) TakeForFulfillment(index int) (*entities.Design, error) {
	if index < 0 || index >= len(r.designs) {
		return nil, fmt.Errorf("design index %d out of range [0, %d)", index, len(r.designs))
	}

	design := r.designs[index]
	copy(r.designs[index:], r.designs[index+1:])
	r.designs[len(r.designs)-1] = design
	return design, nil
}

// IsReferenced reports whether any submitted design named part
func (r *DesignRepository) IsReferenced(part entities.Part) bool {
	_, ok := r.referenced[part]
	return ok
}

// ReferencedParts returns the referenced-parts set ordered by tag, then size
func (r *DesignRepository) ReferencedParts() []entities.Part {
	parts := make(map[entities.Part]entities.Quantity, len(r.referenced))
	for part := range r.referenced {
		parts[part] = 1
	}

	sorted := entities.SortPartQuantities(parts)
	result := make([]entities.Part, len(sorted))
	for i, pq := range sorted {
		result[i] = pq.Part
	}
	return result
}

// Designs returns the queue in its current order
func (r *DesignRepository) Designs() []*entities.Design {
	designs := make([]*entities.Design, len(r.designs))
	copy(designs, r.designs)
	return designs
}

// Len returns the number of queued designs
func (r *DesignRepository) Len() int {
	return len(r.designs)
}

// canFulfill checks the size aggregate first, then each named requirement
func canFulfill(design *entities.Design, stock repositories.StockRepository) (bool, error) {
	sizeTotal, err := stock.QuantityOf(design.Size)
	if err != nil {
		return false, err
	}
	if sizeTotal < design.TotalParts {
		return false, nil
	}

	for part, required := range design.Parts {
		available, err := stock.QuantityOf(part)
		if err != nil {
			return false, err
		}
		if available < required {
			return false, nil
		}
	}
	return true, nil
}
