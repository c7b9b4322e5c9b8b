// Package notify carries "the value under this key changed" events between
// views that share one storage medium.
package notify

import (
	"context"
	"sync"
)

// Event says that key was rewritten by the view identified by Origin.
type Event struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

type Notifier interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(ctx context.Context, key string) (Subscription, error)
}

type Subscription interface {
	Events() <-chan Event
	// Close stops delivery and closes the Events channel. Safe to call twice.
	Close() error
}

const subscriptionBuffer = 16

// Broker is an in-process Notifier. Views inside one process (and tests) use it.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[*brokerSub]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*brokerSub]struct{})}
}

// Publish never blocks: a subscriber whose buffer is full misses the event.
// Any later event makes it reload the same full collection anyway.
func (b *Broker) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs[ev.Key] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context, key string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sub := &brokerSub{
		broker: b,
		key:    key,
		ch:     make(chan Event, subscriptionBuffer),
	}
	b.mu.Lock()
	if b.subs[key] == nil {
		b.subs[key] = make(map[*brokerSub]struct{})
	}
	b.subs[key][sub] = struct{}{}
	b.mu.Unlock()
	return sub, nil
}

// Subscribers returns the number of live subscriptions on key.
func (b *Broker) Subscribers(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[key])
}

type brokerSub struct {
	broker *Broker
	key    string
	ch     chan Event
	once   sync.Once
}

func (s *brokerSub) Events() <-chan Event {
	return s.ch
}

func (s *brokerSub) Close() error {
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.subs[s.key], s)
		if len(s.broker.subs[s.key]) == 0 {
			delete(s.broker.subs, s.key)
		}
		close(s.ch)
		s.broker.mu.Unlock()
	})
	return nil
}
