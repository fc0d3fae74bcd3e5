package intake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"agegate/internal/pos/erply"
	"agegate/pkg/platform/circuit"
)

// SaleSource exposes the register's current sale for polling.
type SaleSource interface {
	CurrentSale(ctx context.Context) (*erply.Sale, error)
}

// Monitor polls the POS API for transaction boundaries the event sources
// cannot deliver directly: a new sale opened on the register, or the open
// sale emptied or completed. It is the fallback that keeps the engine's
// state honest when the register integration misses an event.
type Monitor struct {
	source     SaleSource
	dispatcher *Dispatcher
	interval   time.Duration
	logger     *slog.Logger
	breaker    *circuit.Breaker

	lastTxnID string
	lastCount int
	sawSale   bool
}

// MonitorOption configures the Monitor.
type MonitorOption func(*Monitor)

// WithPollInterval overrides the poll interval when greater than zero.
func WithPollInterval(interval time.Duration) MonitorOption {
	return func(m *Monitor) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithMonitorLogger overrides the logger.
func WithMonitorLogger(logger *slog.Logger) MonitorOption {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMonitor constructs a Monitor with required collaborators and options applied.
func NewMonitor(source SaleSource, dispatcher *Dispatcher, opts ...MonitorOption) (*Monitor, error) {
	if source == nil || dispatcher == nil {
		return nil, fmt.Errorf("source and dispatcher are required")
	}
	m := &Monitor{
		source:     source,
		dispatcher: dispatcher,
		interval:   2 * time.Second,
		logger:     slog.Default(),
		breaker:    circuit.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// Start polls until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := m.RunOnce(ctx)
			if err != nil {
				// The breaker keeps a dead POS API from flooding the log:
				// one line when it goes down, one when it comes back.
				if m.breaker.Failure() {
					m.logger.ErrorContext(ctx, "pos api unhealthy, suppressing further poll warnings", "error", err)
				} else if !m.breaker.IsOpen() {
					m.logger.WarnContext(ctx, "sale poll failed", "error", err)
				}
				continue
			}
			if m.breaker.Success() {
				m.logger.InfoContext(ctx, "pos api recovered")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs one poll and emits boundary or item-count events for any
// change since the previous poll.
func (m *Monitor) RunOnce(ctx context.Context) error {
	sale, err := m.source.CurrentSale(ctx)
	if err != nil {
		return err
	}

	if sale == nil {
		// No open sale. If we were tracking one, it just completed.
		if m.sawSale && m.lastCount > 0 {
			m.dispatcher.ItemCount(0)
		}
		m.lastTxnID = ""
		m.lastCount = 0
		m.sawSale = false
		return nil
	}

	txnID := string(sale.TransactionID)
	if txnID != m.lastTxnID {
		m.dispatcher.TransactionBoundary(sale.TransactionID)
		m.lastTxnID = txnID
	}
	if !m.sawSale || sale.ItemCount != m.lastCount {
		m.dispatcher.ItemCount(sale.ItemCount)
		m.lastCount = sale.ItemCount
	}
	m.sawSale = true
	return nil
}
