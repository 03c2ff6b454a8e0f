package event

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var delivered int32
	for i := 0; i < 3; i++ {
		bus.Subscribe(func(e OrderCreated) error {
			atomic.AddInt32(&delivered, 1)
			return nil
		})
	}

	bus.PublishAsync(OrderCreated{OrderID: 1, Total: decimal.RequireFromString("10.00")})
	bus.Wait()

	assert.EqualValues(t, 3, atomic.LoadInt32(&delivered))
}

func TestBusIsolatesFailingHandlers(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var delivered int32
	bus.Subscribe(func(e OrderCreated) error {
		panic("boom")
	})
	bus.Subscribe(func(e OrderCreated) error {
		return errors.New("handler failed")
	})
	bus.Subscribe(func(e OrderCreated) error {
		atomic.AddInt32(&delivered, 1)
		return nil
	})

	// must not panic the publisher or block delivery to healthy handlers
	bus.PublishAsync(OrderCreated{OrderID: 2})
	bus.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&delivered))
}

func TestBusWithNoSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.PublishAsync(OrderCreated{OrderID: 3})
	bus.Wait()
}
