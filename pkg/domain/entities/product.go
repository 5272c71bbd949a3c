package entities

import "fmt"

// Product is one assembled output: the fully resolved consumption record for
// one firing of a design.
type Product struct {
	ID     string
	Name   string
	Size   Size
	Parts  map[Part]Quantity
	Filler map[Part]Quantity
}

// NewProduct creates an empty product for the given design
func NewProduct(id string, design *Design) *Product {
	return &Product{
		ID:     id,
		Name:   design.Name,
		Size:   design.Size,
		Parts:  make(map[Part]Quantity, len(design.Parts)+1),
		Filler: make(map[Part]Quantity),
	}
}

// AddPart records amount units of part in the product
func (p *Product) AddPart(part Part, amount Quantity) {
	p.Parts[part] += amount
}

// AddFiller records a single filler unit. Filler units also count towards Parts.
func (p *Product) AddFiller(part Part) {
	p.Parts[part]++
	p.Filler[part]++
}

// Total returns the number of parts consumed by the product
func (p *Product) Total() Quantity {
	var total Quantity
	for _, qty := range p.Parts {
		total += qty
	}
	return total
}

// SortedParts returns the consumed parts ordered by tag
func (p *Product) SortedParts() []PartQuantity {
	return SortPartQuantities(p.Parts)
}

// String returns the canonical form, e.g. "[Chair]S1a1b1c1d"
func (p *Product) String() string {
	return fmt.Sprintf("[%s]%s%s", p.Name, p.Size, formatPartCounts(p.Parts))
}
