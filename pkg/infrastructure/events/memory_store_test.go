package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/assembler/pkg/domain/entities"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	part := entities.Part{Tag: "a", Size: entities.Small}
	require.NoError(t, store.AppendEvent(StockStream, NewPartReceivedEvent(part, 1, 1)))
	require.NoError(t, store.AppendEvent(StockStream, NewPartReceivedEvent(part, 2, 2)))
	require.NoError(t, store.AppendEvent(DesignStream, NewEvent(DesignSubmittedEvent, DesignStream, DesignSubmitted{Design: "[X]S1a1"})))

	stock, err := store.ReadEvents(StockStream, 1)
	require.NoError(t, err)
	require.Len(t, stock, 2)
	assert.Equal(t, 1, stock[0].Version())
	assert.Equal(t, 2, stock[1].Version())
	assert.Equal(t, entities.Quantity(2), stock[1].Data().(PartReceived).InStock)

	tail, err := store.ReadEvents(StockStream, 2)
	require.NoError(t, err)
	assert.Len(t, tail, 1)

	missing, err := store.ReadEvents("nope", 1)
	require.NoError(t, err)
	assert.Empty(t, missing)

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, DesignSubmittedEvent, all[2].Type())

	rest, err := store.ReadAllEvents(5)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestInMemoryEventStore_SubscribersSeeEventsInOrder(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	var seen []string
	handler := &HandlerFunc{
		Types: []string{ProductAssembledEvent},
		Fn: func(e Event) error {
			seen = append(seen, e.Data().(ProductAssembled).Design)
			return nil
		},
	}
	require.NoError(t, store.Subscribe([]string{ProductAssembledEvent}, handler))

	for _, name := range []string{"X", "Y", "X"} {
		design, err := entities.NewDesign(name, entities.Small, nil, 0)
		require.NoError(t, err)
		require.NoError(t, store.AppendEvent(ProductStream, NewProductAssembledEvent(entities.NewProduct(name, design))))
	}
	_ = store.AppendEvent(DesignStream, NewEvent(DesignRotatedEvent, DesignStream, nil))

	assert.Equal(t, []string{"X", "Y", "X"}, seen)

	require.NoError(t, store.Unsubscribe(handler))
	_ = store.AppendEvent(ProductStream, NewEvent(ProductAssembledEvent, ProductStream, ProductAssembled{Design: "Z"}))
	assert.Len(t, seen, 3)
}

func TestInMemoryEventStore_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	calls := 0
	failing := &HandlerFunc{Types: []string{PartReceivedEvent}, Fn: func(Event) error { return errors.New("boom") }}
	counting := &HandlerFunc{Types: []string{PartReceivedEvent}, Fn: func(Event) error { calls++; return nil }}
	_ = store.Subscribe([]string{PartReceivedEvent}, failing)
	_ = store.Subscribe([]string{PartReceivedEvent}, counting)

	require.NoError(t, store.AppendEvent(StockStream, NewEvent(PartReceivedEvent, StockStream, nil)))
	assert.Equal(t, 1, calls)
}

func TestNewProductAssembledEvent_SplitsNamedAndFiller(t *testing.T) {
	design, err := entities.NewDesign("Box", entities.Small, map[entities.Part]entities.Quantity{
		{Tag: "a", Size: entities.Small}: 1,
	}, 3)
	require.NoError(t, err)

	product := entities.NewProduct("p-1", design)
	product.AddPart(entities.Part{Tag: "a", Size: entities.Small}, 1)
	product.AddFiller(entities.Part{Tag: "b", Size: entities.Small})
	product.AddFiller(entities.Part{Tag: "b", Size: entities.Small})

	data := NewProductAssembledEvent(product).Data().(ProductAssembled)
	assert.Equal(t, "p-1", data.ProductID)
	assert.Equal(t, "[Box]S1a2b", data.Text)
	assert.Equal(t, entities.Quantity(1), data.Named)
	assert.Equal(t, entities.Quantity(2), data.Filler)
}
