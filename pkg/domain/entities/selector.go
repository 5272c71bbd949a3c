package entities

// StockSelector scopes a stock quantity query. It is implemented by
// AllParts, Size and Part.
type StockSelector interface {
	stockSelector()
}

type allParts struct{}

// AllParts selects every part in stock regardless of size
var AllParts StockSelector = allParts{}

func (allParts) stockSelector() {}
func (Size) stockSelector()     {}
func (Part) stockSelector()     {}
