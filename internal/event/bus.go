package event

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderCreated is published after an order transaction commits
type OrderCreated struct {
	OrderID    uint            `json:"order_id"`
	CustomerID uint            `json:"customer_id"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
}

// Handler consumes an OrderCreated notification
type Handler func(OrderCreated) error

// Bus is an in-process pub/sub for domain events. Delivery is
// best-effort: handlers run outside the publishing transaction and their
// failures are logged, never propagated.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewBus creates a new event bus
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers a handler for order-created events
func (b *Bus) Subscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// PublishAsync dispatches the event to every handler on its own
// goroutine and returns immediately
func (b *Bus) PublishAsync(e OrderCreated) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			b.dispatch(h, e)
		}(handler)
	}
}

// Wait blocks until all in-flight handlers return, used on shutdown and
// by tests
func (b *Bus) Wait() {
	b.wg.Wait()
}

func (b *Bus) dispatch(h Handler, e OrderCreated) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("order event handler panicked",
				zap.Uint("order_id", e.OrderID),
				zap.Any("panic", r),
			)
		}
	}()

	if err := h(e); err != nil {
		b.logger.Error("order event handler failed",
			zap.Uint("order_id", e.OrderID),
			zap.Error(err),
		)
	}
}
