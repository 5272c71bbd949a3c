package shared

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/vsinha/assembler/pkg/domain/entities"
	"github.com/vsinha/assembler/pkg/domain/repositories"
)

// RandomSource picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// FillerCandidates returns the in-stock parts of size that no design has ever
// named, ordered by tag.
func FillerCandidates(
	size entities.Size,
	stock repositories.StockRepository,
	designs repositories.DesignRepository,
) []entities.Part {
	var candidates []entities.Part
	for _, part := range stock.Parts() {
		if part.Size != size || designs.IsReferenced(part) {
			continue
		}
		candidates = append(candidates, part)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Less(candidates[j])
	})
	return candidates
}

// SelectFillerPart chooses the part to consume for one unnamed slot of a design
// of the given size. Parts no design names are drawn uniformly at random;
// otherwise the most stocked part of that size is used.
func SelectFillerPart(
	size entities.Size,
	stock repositories.StockRepository,
	designs repositories.DesignRepository,
	rng RandomSource,
) (entities.Part, error) {
	if !size.Valid() {
		return entities.Part{}, fmt.Errorf("%w: %d", entities.ErrUnsupportedSize, int(size))
	}

	if candidates := FillerCandidates(size, stock, designs); len(candidates) > 0 {
		if rng == nil || len(candidates) == 1 {
			return candidates[0], nil
		}
		return candidates[rng.IntN(len(candidates))], nil
	}

	part, ok := stock.MostStocked(size)
	if !ok {
		return entities.Part{}, fmt.Errorf("%w: no %s part left for filler", entities.ErrInsufficientStock, size)
	}
	return part, nil
}

// NewRandomSource returns a PCG-backed source. Seed 0 seeds from the clock.
func NewRandomSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
