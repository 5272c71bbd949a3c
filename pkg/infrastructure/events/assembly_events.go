package events

import (
	"github.com/vsinha/assembler/pkg/domain/entities"
)

const (
	DesignSubmittedEvent  = "design.submitted"
	DesignRotatedEvent    = "design.rotated"
	PartReceivedEvent     = "part.received"
	ProductAssembledEvent = "product.assembled"
)

// Stream identifiers
const (
	DesignStream  = "designs"
	StockStream   = "stock"
	ProductStream = "products"
)

type DesignSubmitted struct {
	Design   string `json:"design"`
	Position int    `json:"position"`
}

type DesignRotated struct {
	Design    string `json:"design"`
	FromIndex int    `json:"from_index"`
	QueueLen  int    `json:"queue_len"`
}

type PartReceived struct {
	Part     entities.Part     `json:"part"`
	InStock  entities.Quantity `json:"in_stock"`
	SizeHeld entities.Quantity `json:"size_held"`
}

type ProductAssembled struct {
	ProductID string            `json:"product_id"`
	Design    string            `json:"design"`
	Text      string            `json:"text"`
	Named     entities.Quantity `json:"named"`
	Filler    entities.Quantity `json:"filler"`
}

func NewDesignSubmittedEvent(design *entities.Design, position int) Event {
	return NewEvent(DesignSubmittedEvent, DesignStream, DesignSubmitted{
		Design:   design.String(),
		Position: position,
	})
}

func NewDesignRotatedEvent(design *entities.Design, fromIndex, queueLen int) Event {
	return NewEvent(DesignRotatedEvent, DesignStream, DesignRotated{
		Design:    design.Name,
		FromIndex: fromIndex,
		QueueLen:  queueLen,
	})
}

func NewPartReceivedEvent(part entities.Part, inStock, sizeHeld entities.Quantity) Event {
	return NewEvent(PartReceivedEvent, StockStream, PartReceived{
		Part:     part,
		InStock:  inStock,
		SizeHeld: sizeHeld,
	})
}

func NewProductAssembledEvent(product *entities.Product) Event {
	var filler entities.Quantity
	for _, qty := range product.Filler {
		filler += qty
	}
	return NewEvent(ProductAssembledEvent, ProductStream, ProductAssembled{
		ProductID: product.ID,
		Design:    product.Name,
		Text:      product.String(),
		Named:     product.Total() - filler,
		Filler:    filler,
	})
}
