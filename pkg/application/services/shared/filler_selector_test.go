package shared

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/vsinha/assembler/pkg/domain/entities"
	"github.com/vsinha/assembler/pkg/infrastructure/repositories/memory"
)

type fixedIndex int

func (f fixedIndex) IntN(n int) int { return int(f) % n }

func small(tag string) entities.Part { return entities.Part{Tag: tag, Size: entities.Small} }
func large(tag string) entities.Part { return entities.Part{Tag: tag, Size: entities.Large} }

func setup(t *testing.T, named map[entities.Part]entities.Quantity, stock map[entities.Part]entities.Quantity) (*memory.StockRepository, *memory.DesignRepository) {
	t.Helper()

	designs := memory.NewDesignRepository(1)
	if len(named) > 0 {
		var total entities.Quantity
		var size entities.Size
		for p, qty := range named {
			total += qty
			size = p.Size
		}
		design, err := entities.NewDesign("Test", size, named, total)
		if err != nil {
			t.Fatalf("Failed to create design: %v", err)
		}
		if err := designs.Submit(design); err != nil {
			t.Fatalf("Failed to submit design: %v", err)
		}
	}

	ledger := memory.NewStockRepository()
	for p, qty := range stock {
		if err := ledger.Add(p, qty); err != nil {
			t.Fatalf("Failed to add stock: %v", err)
		}
	}
	return ledger, designs
}

func TestSelectFillerPart_PrefersUnreferencedParts(t *testing.T) {
	stock, designs := setup(t,
		map[entities.Part]entities.Quantity{small("a"): 1, small("b"): 1},
		map[entities.Part]entities.Quantity{small("a"): 9, small("b"): 9, small("c"): 1, large("d"): 5},
	)

	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		got, err := SelectFillerPart(entities.Small, stock, designs, rng)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if got != small("c") {
			t.Fatalf("seed %d: expected cS, got %s", seed, got)
		}
	}
}

func TestSelectFillerPart_RandomDrawIsOverSortedCandidates(t *testing.T) {
	stock, designs := setup(t,
		map[entities.Part]entities.Quantity{small("a"): 1},
		map[entities.Part]entities.Quantity{small("z"): 1, small("c"): 1, small("m"): 1, small("a"): 4},
	)

	expected := []entities.Part{small("c"), small("m"), small("z")}
	for i, want := range expected {
		got, err := SelectFillerPart(entities.Small, stock, designs, fixedIndex(i))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("index %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestSelectFillerPart_EveryCandidateIsReachable(t *testing.T) {
	stock, designs := setup(t,
		map[entities.Part]entities.Quantity{small("a"): 1},
		map[entities.Part]entities.Quantity{small("b"): 1, small("c"): 1, small("d"): 1},
	)

	seen := map[entities.Part]bool{}
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 300; i++ {
		got, err := SelectFillerPart(entities.Small, stock, designs, rng)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got == small("a") {
			t.Fatal("Referenced part aS chosen while unreferenced parts exist")
		}
		seen[got] = true
	}
	if len(seen) != 3 {
		t.Errorf("Expected all 3 candidates to be drawn, got %v", seen)
	}
}

func TestSelectFillerPart_FallsBackToMostStocked(t *testing.T) {
	stock, designs := setup(t,
		map[entities.Part]entities.Quantity{small("a"): 1, small("b"): 1},
		map[entities.Part]entities.Quantity{small("a"): 2, small("b"): 5, large("z"): 10},
	)

	got, err := SelectFillerPart(entities.Small, stock, designs, fixedIndex(0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != small("b") {
		t.Errorf("Expected bS, got %s", got)
	}
}

func TestSelectFillerPart_Errors(t *testing.T) {
	stock, designs := setup(t, nil, map[entities.Part]entities.Quantity{large("a"): 1})

	if _, err := SelectFillerPart(entities.Small, stock, designs, nil); !errors.Is(err, entities.ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock, got %v", err)
	}
	if _, err := SelectFillerPart(entities.Size(9), stock, designs, nil); !errors.Is(err, entities.ErrUnsupportedSize) {
		t.Errorf("Expected ErrUnsupportedSize, got %v", err)
	}
}

func TestFillerCandidates(t *testing.T) {
	stock, designs := setup(t,
		map[entities.Part]entities.Quantity{large("a"): 1},
		map[entities.Part]entities.Quantity{large("a"): 1, large("c"): 1, large("b"): 1, small("e"): 1},
	)

	got := FillerCandidates(entities.Large, stock, designs)
	if len(got) != 2 || got[0] != large("b") || got[1] != large("c") {
		t.Errorf("Expected [bL cL], got %v", got)
	}
}
