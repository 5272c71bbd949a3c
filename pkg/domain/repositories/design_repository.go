package repositories

import "github.com/vsinha/assembler/pkg/domain/entities"

// DesignRepository holds the ordered queue of designs awaiting fulfillment
type DesignRepository interface {
	Submit(design *entities.Design) error

	// FindSatisfiable scans the queue front to back and returns the first
	// design the stock can fulfill, along with its queue position.
	// It never mutates the queue.
	FindSatisfiable(stock StockRepository) (design *entities.Design, index int, ok bool, err error)

	// TakeForFulfillment moves the design at index to the back of the queue.
	TakeForFulfillment(index int) (*entities.Design, error)

	// IsReferenced reports whether part was named by any design ever submitted.
	IsReferenced(part entities.Part) bool
	ReferencedParts() []entities.Part

	Designs() []*entities.Design
	Len() int
}
