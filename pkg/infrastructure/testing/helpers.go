package testing

import (
	"github.com/vsinha/assembler/pkg/domain/entities"
	"github.com/vsinha/assembler/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/assembler/pkg/infrastructure/repositories/text"
)

// FurnitureInput is a small design/part document in the wire format. Running
// it assembles [Chair]S1a1b1c1d on the fourth part and [Box]S2e1f on the
// seventh, leaving gS in stock.
const FurnitureInput = `[Chair]S1a1b1c4
[Box]S2e3

aS
bS
cS
dS
eS
eS
fS
gS
`

// MustParseDesign parses a design line - panics on error
func MustParseDesign(line string) *entities.Design {
	design, err := text.NewLoader().ParseDesign(line)
	if err != nil {
		panic(err)
	}
	return design
}

// MustParsePart parses a part line - panics on error
func MustParsePart(line string) entities.Part {
	part, err := text.NewLoader().ParsePart(line)
	if err != nil {
		panic(err)
	}
	return part
}

// BuildRepositories queues the given design lines and adds one unit of stock
// per part line.
func BuildRepositories(designLines []string, partLines ...string) (*memory.StockRepository, *memory.DesignRepository) {
	designRepo := memory.NewDesignRepository(len(designLines))
	for _, line := range designLines {
		if err := designRepo.Submit(MustParseDesign(line)); err != nil {
			panic(err)
		}
	}

	stockRepo := memory.NewStockRepository()
	for _, line := range partLines {
		if err := stockRepo.Add(MustParsePart(line), 1); err != nil {
			panic(err)
		}
	}
	return stockRepo, designRepo
}
