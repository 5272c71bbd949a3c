package main

import (
	"context"
	"fmt"
	"log"

	"github.com/vsinha/assembler/pkg/application/services"
	"github.com/vsinha/assembler/pkg/application/services/shared"
	"github.com/vsinha/assembler/pkg/domain/entities"
	"github.com/vsinha/assembler/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/assembler/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	stock := memory.NewStockRepository()
	designs := memory.NewDesignRepository(2)
	svc := services.NewAssemblyService(stock, designs,
		services.WithRandomSource(shared.NewRandomSource(42)),
	)

	small := func(tag string) entities.Part { return entities.Part{Tag: tag, Size: entities.Small} }

	chair, err := entities.NewDesign("Chair", entities.Small,
		map[entities.Part]entities.Quantity{small("a"): 1, small("b"): 1, small("c"): 1}, 4)
	if err != nil {
		log.Fatal(err)
	}
	stool, err := entities.NewDesign("Stool", entities.Small,
		map[entities.Part]entities.Quantity{small("a"): 1}, 3)
	if err != nil {
		log.Fatal(err)
	}

	for _, d := range []*entities.Design{chair, stool} {
		if err := svc.SubmitDesign(ctx, d); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println("Designs:")
	for _, d := range svc.Designs() {
		fmt.Printf("  %s (%d filler)\n", d, d.FillerCount())
	}

	fmt.Println("\nArrivals:")
	for _, tag := range []string{"a", "b", "c", "x", "a", "y", "y"} {
		part := small(tag)
		product, err := svc.IngestPart(ctx, part)
		if err != nil {
			log.Fatal(err)
		}
		if product == nil {
			fmt.Printf("  %s -> waiting\n", part)
			continue
		}
		fmt.Printf("  %s -> %s\n", part, product)
	}

	fmt.Println("\nRemaining stock:")
	fmt.Println(output.StockListing(svc.Stock()))

	summary := svc.Summary()
	fmt.Printf("\n%d products, filler ratio %s\n", summary.ProductsAssembled, summary.FillerRatio.StringFixed(2))
}
