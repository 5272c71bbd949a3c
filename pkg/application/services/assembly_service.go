package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/assembler/pkg/application/dto"
	"github.com/vsinha/assembler/pkg/application/services/shared"
	"github.com/vsinha/assembler/pkg/domain/entities"
	"github.com/vsinha/assembler/pkg/domain/repositories"
	"github.com/vsinha/assembler/pkg/infrastructure/events"
	"github.com/vsinha/assembler/pkg/infrastructure/idgen"
	"github.com/vsinha/assembler/pkg/infrastructure/logger"
)

// AssemblyService matches arriving parts against queued designs and emits a
// product whenever a design can be fulfilled. It owns the stock ledger and the
// design queue; one mutex makes every check-rotate-consume-fill cycle atomic.
type AssemblyService struct {
	mu sync.Mutex

	stock   repositories.StockRepository
	designs repositories.DesignRepository

	rng        shared.RandomSource
	ids        idgen.Generator
	eventStore events.EventStore
	log        logger.Logger

	tally         *shared.ConsumptionTally
	partsReceived entities.Quantity
}

// Option configures an AssemblyService
type Option func(*AssemblyService)

// WithRandomSource sets the source used for the filler draw
func WithRandomSource(rng shared.RandomSource) Option {
	return func(s *AssemblyService) {
		s.rng = rng
	}
}

// WithIDGenerator sets the product ID generator
func WithIDGenerator(ids idgen.Generator) Option {
	return func(s *AssemblyService) {
		s.ids = ids
	}
}

// WithEventStore publishes assembly events to store
func WithEventStore(store events.EventStore) Option {
	return func(s *AssemblyService) {
		s.eventStore = store
	}
}

// WithLogger sets the service logger
func WithLogger(log logger.Logger) Option {
	return func(s *AssemblyService) {
		s.log = log
	}
}

// NewAssemblyService creates a service over the given repositories. Defaults:
// clock-seeded random source, UUIDv7 IDs, no events, no logging.
func NewAssemblyService(
	stock repositories.StockRepository,
	designs repositories.DesignRepository,
	opts ...Option,
) *AssemblyService {
	s := &AssemblyService{
		stock:   stock,
		designs: designs,
		rng:     shared.NewRandomSource(0),
		ids:     idgen.UUIDv7Generator{},
		log:     logger.Nop(),
		tally:   shared.NewConsumptionTally(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitDesign appends design to the queue
func (s *AssemblyService) SubmitDesign(ctx context.Context, design *entities.Design) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.designs.Submit(design); err != nil {
		return fmt.Errorf("failed to submit design: %w", err)
	}

	s.log.Debug("design submitted", "design", design.String(), "position", s.designs.Len()-1)
	s.publish(events.DesignStream, events.NewDesignSubmittedEvent(design, s.designs.Len()-1))
	return nil
}

// IngestPart adds one unit of part to stock and then attempts to assemble a
// product. It returns nil when no design can be fulfilled yet.
func (s *AssemblyService) IngestPart(ctx context.Context, part entities.Part) (*entities.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stock.Add(part, 1); err != nil {
		return nil, fmt.Errorf("failed to add part %s: %w", part, err)
	}
	s.partsReceived++

	inStock, err := s.stock.QuantityOf(part)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock for %s: %w", part, err)
	}
	sizeHeld, err := s.stock.QuantityOf(part.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock for size %s: %w", part.Size, err)
	}

	s.log.Debug("part received", "part", part.String(), "in_stock", inStock, "size_held", sizeHeld)
	s.publish(events.StockStream, events.NewPartReceivedEvent(part, inStock, sizeHeld))

	return s.createProduct()
}

// CreateProduct assembles a product from the earliest queued design that the
// current stock satisfies. It returns nil, nil when none does.
func (s *AssemblyService) CreateProduct(ctx context.Context) (*entities.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createProduct()
}

// createProduct runs one check-rotate-consume-fill cycle. Callers hold s.mu.
func (s *AssemblyService) createProduct() (*entities.Product, error) {
	design, index, ok, err := s.designs.FindSatisfiable(s.stock)
	if err != nil {
		return nil, fmt.Errorf("failed to find satisfiable design: %w", err)
	}
	if !ok {
		return nil, nil
	}

	if _, err := s.designs.TakeForFulfillment(index); err != nil {
		return nil, fmt.Errorf("failed to rotate design %s: %w", design.Name, err)
	}
	s.publish(events.DesignStream, events.NewDesignRotatedEvent(design, index, s.designs.Len()))

	product := entities.NewProduct(s.ids.Generate(), design)

	for _, pq := range design.SortedParts() {
		if err := s.stock.Remove(pq.Part, pq.Quantity); err != nil {
			return nil, fmt.Errorf("%w: design %s: consuming %d %s: %w",
				entities.ErrInvariantViolation, design.Name, pq.Quantity, pq.Part, err)
		}
		product.AddPart(pq.Part, pq.Quantity)
	}

	for remaining := design.FillerCount(); remaining > 0; remaining-- {
		part, err := shared.SelectFillerPart(design.Size, s.stock, s.designs, s.rng)
		if err != nil {
			return nil, fmt.Errorf("%w: design %s: selecting filler: %w",
				entities.ErrInvariantViolation, design.Name, err)
		}
		if err := s.stock.Remove(part, 1); err != nil {
			return nil, fmt.Errorf("%w: design %s: consuming filler %s: %w",
				entities.ErrInvariantViolation, design.Name, part, err)
		}
		product.AddFiller(part)
		s.log.Debug("filler selected", "design", design.Name, "part", part.String(), "remaining", remaining-1)
	}

	s.tally.Record(product)
	s.log.Info("product assembled", "id", product.ID, "product", product.String())
	s.publish(events.ProductStream, events.NewProductAssembledEvent(product))
	return product, nil
}

// Summary reports what the service has received and assembled so far
func (s *AssemblyService) Summary() dto.AssemblySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining, _ := s.stock.QuantityOf(entities.AllParts)
	named := s.tally.NamedUnits()
	filler := s.tally.FillerUnits()

	summary := dto.AssemblySummary{
		PartsReceived:     s.partsReceived,
		ProductsAssembled: s.tally.Products,
		NamedUnits:        named,
		FillerUnits:       filler,
		FillerRatio:       dto.FillerRatio(named, filler),
		StockRemaining:    remaining,
		DesignsQueued:     s.designs.Len(),
		PerDesign:         make([]dto.DesignCount, 0, len(s.tally.PerDesign)),
	}
	for _, name := range s.tally.DesignNames() {
		summary.PerDesign = append(summary.PerDesign, dto.DesignCount{
			Design:   name,
			Products: s.tally.PerDesign[name],
		})
	}
	return summary
}

// Stock returns a copy of the current per-part stock counts
func (s *AssemblyService) Stock() map[entities.Part]entities.Quantity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock.Snapshot()
}

// Designs returns the design queue in its current order
func (s *AssemblyService) Designs() []*entities.Design {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.designs.Designs()
}

func (s *AssemblyService) publish(streamID string, event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(streamID, event); err != nil {
		s.log.Warn("failed to publish event", "event", event.Type(), "error", err)
	}
}
