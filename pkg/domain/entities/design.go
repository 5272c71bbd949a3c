package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PartQuantity pairs a part with a count
type PartQuantity struct {
	Part     Part
	Quantity Quantity
}

// Design is a reusable bill of materials: named part requirements plus a total
// parts target. The difference between the two is filled from stock at
// assembly time.
type Design struct {
	Name       string
	Size       Size
	Parts      map[Part]Quantity
	TotalParts Quantity
}

// NewDesign creates a validated Design. The parts map is copied.
func NewDesign(name string, size Size, parts map[Part]Quantity, totalParts Quantity) (*Design, error) {
	if name == "" {
		return nil, fmt.Errorf("design name cannot be empty")
	}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSize, int(size))
	}

	named := make(map[Part]Quantity, len(parts))
	var namedCount Quantity
	for part, qty := range parts {
		if qty <= 0 {
			return nil, fmt.Errorf("design %s: quantity for part %s must be positive, got %d", name, part, qty)
		}
		if part.Size != size {
			return nil, fmt.Errorf("design %s: part %s does not match design size %s", name, part, size)
		}
		named[part] = qty
		namedCount += qty
	}

	if totalParts < namedCount {
		return nil, fmt.Errorf(
			"design %s: total parts (%d) cannot be less than named parts (%d)",
			name,
			totalParts,
			namedCount,
		)
	}

	return &Design{
		Name:       name,
		Size:       size,
		Parts:      named,
		TotalParts: totalParts,
	}, nil
}

// NamedCount returns the sum of the named requirement counts
func (d *Design) NamedCount() Quantity {
	var total Quantity
	for _, qty := range d.Parts {
		total += qty
	}
	return total
}

// FillerCount returns how many unnamed parts must be chosen from stock
func (d *Design) FillerCount() Quantity {
	return d.TotalParts - d.NamedCount()
}

// SortedParts returns the named requirements ordered by tag
func (d *Design) SortedParts() []PartQuantity {
	return SortPartQuantities(d.Parts)
}

// String returns the wire form, e.g. "[Chair]S1a1b1c4"
func (d *Design) String() string {
	return fmt.Sprintf("[%s]%s%s%d", d.Name, d.Size, formatPartCounts(d.Parts), d.TotalParts)
}

// SortPartQuantities flattens a part count map ordered by tag, then size
func SortPartQuantities(parts map[Part]Quantity) []PartQuantity {
	sorted := make([]PartQuantity, 0, len(parts))
	for part, qty := range parts {
		sorted = append(sorted, PartQuantity{Part: part, Quantity: qty})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Part.Less(sorted[j].Part)
	})
	return sorted
}

func formatPartCounts(parts map[Part]Quantity) string {
	var b strings.Builder
	for _, pq := range SortPartQuantities(parts) {
		b.WriteString(strconv.FormatInt(int64(pq.Quantity), 10))
		b.WriteString(pq.Part.Tag)
	}
	return b.String()
}
