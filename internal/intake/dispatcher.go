package intake

import (
	"context"
	"log/slog"

	"agegate/internal/catalog"
	"agegate/internal/platform/metrics"
	"agegate/internal/verification"
	id "agegate/pkg/domain"
)

// credentialLengthThreshold splits scanner payloads by kind: license barcodes
// (PDF417) are always far longer than retail EAN/UPC codes, so anything at or
// above this length is treated as an ID credential.
const credentialLengthThreshold = 50

// Engine is the slice of the verification service the dispatcher drives.
type Engine interface {
	StartTransaction(ctx context.Context, txnID id.TransactionID)
	ObserveProduct(ctx context.Context, product catalog.Product)
	ObserveItemCount(ctx context.Context, count int)
	ReceiveCredential(ctx context.Context, raw string) (*verification.Result, error)
}

// ProductSource resolves scanned barcodes to product records.
type ProductSource interface {
	LookupProduct(ctx context.Context, code string) (*catalog.Product, error)
}

// event is one unit of work on the queue.
type event struct {
	scan     string
	txnID    id.TransactionID
	count    *int
	boundary bool
}

// Dispatcher is the single event queue feeding the engine. Producers never
// block: a full queue drops the event with a log line, because stalling the
// scanner or the poller would freeze the register.
type Dispatcher struct {
	engine  Engine
	source  ProductSource
	queue   chan event
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// DispatcherOption configures the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithQueueSize overrides the event queue depth when greater than zero.
func WithQueueSize(size int) DispatcherOption {
	return func(d *Dispatcher) {
		if size > 0 {
			d.queue = make(chan event, size)
		}
	}
}

// WithDispatcherLogger overrides the logger.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithDispatcherMetrics enables metrics collection.
func WithDispatcherMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a dispatcher for the given engine and product source.
func NewDispatcher(engine Engine, source ProductSource, opts ...DispatcherOption) *Dispatcher {
	if engine == nil {
		panic("intake: engine is required")
	}
	if source == nil {
		panic("intake: product source is required")
	}
	d := &Dispatcher{
		engine: engine,
		source: source,
		queue:  make(chan event, 64),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Scan enqueues a raw scanner payload.
func (d *Dispatcher) Scan(payload string) {
	d.enqueue(event{scan: payload})
}

// TransactionBoundary enqueues a transaction change.
func (d *Dispatcher) TransactionBoundary(txnID id.TransactionID) {
	d.enqueue(event{txnID: txnID, boundary: true})
}

// ItemCount enqueues a line-item count report.
func (d *Dispatcher) ItemCount(count int) {
	d.enqueue(event{count: &count})
}

func (d *Dispatcher) enqueue(e event) {
	select {
	case d.queue <- e:
	default:
		d.logger.Warn("intake queue full, event dropped")
	}
}

// Run drains the queue until the context is cancelled. Exactly one Run loop
// may be active; it is the serialization point for async sources.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-d.queue:
			d.handle(ctx, e)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, e event) {
	switch {
	case e.boundary:
		d.engine.StartTransaction(ctx, e.txnID)
	case e.count != nil:
		d.engine.ObserveItemCount(ctx, *e.count)
	case len(e.scan) >= credentialLengthThreshold:
		if d.metrics != nil {
			d.metrics.ScannerPayloads.WithLabelValues("credential").Inc()
		}
		// Parse failures are already reported through the presenter and the
		// audit trail; here they only need a log line.
		if _, err := d.engine.ReceiveCredential(ctx, e.scan); err != nil {
			d.logger.WarnContext(ctx, "scanned credential rejected", "error", err)
		}
	default:
		if d.metrics != nil {
			d.metrics.ScannerPayloads.WithLabelValues("product").Inc()
		}
		product, err := d.source.LookupProduct(ctx, e.scan)
		if err != nil {
			if d.metrics != nil {
				d.metrics.PosLookupFailures.Inc()
			}
			d.logger.WarnContext(ctx, "product lookup failed",
				"code", e.scan,
				"error", err,
			)
			return
		}
		d.engine.ObserveProduct(ctx, *product)
	}
}
