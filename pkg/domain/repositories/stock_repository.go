package repositories

import "github.com/vsinha/assembler/pkg/domain/entities"

// StockRepository tracks the parts currently available for assembly
type StockRepository interface {
	Add(part entities.Part, amount entities.Quantity) error
	Remove(part entities.Part, amount entities.Quantity) error

	// QuantityOf returns the stock count for the selector: entities.AllParts,
	// a size class, or a single part (0 if absent).
	QuantityOf(selector entities.StockSelector) (entities.Quantity, error)

	// Parts returns every part with a positive count, in no particular order.
	Parts() []entities.Part

	// MostStocked returns the part with the highest count, restricted to the
	// given sizes when any are passed. ok is false when nothing matches.
	MostStocked(sizes ...entities.Size) (part entities.Part, ok bool)

	Snapshot() map[entities.Part]entities.Quantity
}
