package view

import (
	"context"
	"errors"
	"sync"

	"room-booking/internal/notify"

	"go.uber.org/zap"
)

// Bridge refreshes a View whenever another view rewrites the shared key.
// Events published by the view's own store are ignored.
type Bridge struct {
	view     *View
	notifier notify.Notifier
	key      string
	origin   string
	log      *zap.Logger

	mu     sync.Mutex
	sub    notify.Subscription
	cancel context.CancelFunc
	done   chan struct{}
}

func NewBridge(v *View, n notify.Notifier, key, origin string, log *zap.Logger) *Bridge {
	return &Bridge{
		view:     v,
		notifier: n,
		key:      key,
		origin:   origin,
		log:      log.With(zap.String("component", "bridge"), zap.String("key", key), zap.String("origin", origin)),
	}
}

// Start subscribes and begins listening. It returns once the subscription is
// live.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sub != nil {
		return errors.New("bridge already started")
	}

	sub, err := b.notifier.Subscribe(ctx, b.key)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	b.sub = sub
	b.cancel = cancel
	b.done = make(chan struct{})

	go b.run(runCtx, sub, b.done)

	b.log.Info("Listening for booking changes")
	return nil
}

func (b *Bridge) run(ctx context.Context, sub notify.Subscription, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			if ev.Origin == b.origin {
				continue
			}
			b.log.Debug("Foreign change, refreshing", zap.String("from", ev.Origin))
			if err := b.view.Refresh(ctx); err != nil && ctx.Err() == nil {
				b.log.Warn("Refresh after foreign change failed", zap.Error(err))
			}
		}
	}
}

// Close unsubscribes and waits for the listener to stop. Safe to call more
// than once, and before Start.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sub == nil {
		return nil
	}

	b.cancel()
	err := b.sub.Close()
	<-b.done

	b.sub = nil
	b.log.Info("Stopped listening for booking changes")
	return err
}
