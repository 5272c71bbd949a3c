// Package metrics exposes assembly counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vsinha/assembler/pkg/infrastructure/events"
)

const namespace = "assembler"

// Recorder turns assembly events into Prometheus metrics
type Recorder struct {
	registry *prometheus.Registry

	partsReceived    *prometheus.CounterVec
	designsSubmitted prometheus.Counter
	productsTotal    *prometheus.CounterVec
	unitsConsumed    *prometheus.CounterVec
	fillerPerProduct prometheus.Histogram
	queueLength      prometheus.Gauge
}

var _ events.EventHandler = (*Recorder)(nil)

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		partsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parts_received_total",
			Help:      "Parts added to stock, by size.",
		}, []string{"size"}),
		designsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "designs_submitted_total",
			Help:      "Designs added to the queue.",
		}),
		productsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_assembled_total",
			Help:      "Products assembled, by design.",
		}, []string{"design"}),
		unitsConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_consumed_total",
			Help:      "Stock units consumed by products, by kind (named or filler).",
		}, []string{"kind"}),
		fillerPerProduct: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filler_units_per_product",
			Help:      "Filler units drawn for each product.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		queueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "design_queue_length",
			Help:      "Designs currently queued.",
		}),
	}

	r.registry.MustRegister(
		r.partsReceived,
		r.designsSubmitted,
		r.productsTotal,
		r.unitsConsumed,
		r.fillerPerProduct,
		r.queueLength,
	)
	return r
}

// Registry returns the registry holding the assembly metrics
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// EventTypes lists the events the recorder subscribes to
func (r *Recorder) EventTypes() []string {
	return []string{
		events.DesignSubmittedEvent,
		events.PartReceivedEvent,
		events.ProductAssembledEvent,
	}
}

// Handle implements events.EventHandler
func (r *Recorder) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.DesignSubmitted:
		r.designsSubmitted.Inc()
		r.queueLength.Set(float64(data.Position + 1))
	case events.PartReceived:
		r.partsReceived.WithLabelValues(data.Part.Size.String()).Inc()
	case events.ProductAssembled:
		r.productsTotal.WithLabelValues(data.Design).Inc()
		r.unitsConsumed.WithLabelValues("named").Add(float64(data.Named))
		r.unitsConsumed.WithLabelValues("filler").Add(float64(data.Filler))
		r.fillerPerProduct.Observe(float64(data.Filler))
	default:
		return fmt.Errorf("unexpected payload %T for %s", event.Data(), event.Type())
	}
	return nil
}

// CanHandle implements events.EventHandler
func (r *Recorder) CanHandle(eventType string) bool {
	for _, t := range r.EventTypes() {
		if t == eventType {
			return true
		}
	}
	return false
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
