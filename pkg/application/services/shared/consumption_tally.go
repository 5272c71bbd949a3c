package shared

import (
	"sort"

	"github.com/vsinha/assembler/pkg/domain/entities"
)

// ConsumptionTally accumulates what assembled products drew from stock
type ConsumptionTally struct {
	Named     map[entities.Part]entities.Quantity
	Filler    map[entities.Part]entities.Quantity
	PerDesign map[string]int
	Products  int
}

// NewConsumptionTally creates an empty tally
func NewConsumptionTally() *ConsumptionTally {
	return &ConsumptionTally{
		Named:     make(map[entities.Part]entities.Quantity),
		Filler:    make(map[entities.Part]entities.Quantity),
		PerDesign: make(map[string]int),
	}
}

// Record adds one assembled product to the tally
func (t *ConsumptionTally) Record(product *entities.Product) {
	t.Products++
	t.PerDesign[product.Name]++
	for part, qty := range product.Parts {
		filler := product.Filler[part]
		if named := qty - filler; named > 0 {
			t.Named[part] += named
		}
		if filler > 0 {
			t.Filler[part] += filler
		}
	}
}

// NamedUnits returns the number of units consumed by named requirements
func (t *ConsumptionTally) NamedUnits() entities.Quantity {
	return sumQuantities(t.Named)
}

// FillerUnits returns the number of units consumed as filler
func (t *ConsumptionTally) FillerUnits() entities.Quantity {
	return sumQuantities(t.Filler)
}

// DesignNames returns the names of designs that produced at least one product, sorted
func (t *ConsumptionTally) DesignNames() []string {
	names := make([]string, 0, len(t.PerDesign))
	for name := range t.PerDesign {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the tally
func (t *ConsumptionTally) Reset() {
	clear(t.Named)
	clear(t.Filler)
	clear(t.PerDesign)
	t.Products = 0
}

func sumQuantities(parts map[entities.Part]entities.Quantity) entities.Quantity {
	var total entities.Quantity
	for _, qty := range parts {
		total += qty
	}
	return total
}
