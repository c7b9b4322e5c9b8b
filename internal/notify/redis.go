package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisNotifier fans events out to every process subscribed to the same redis.
type RedisNotifier struct {
	rdb    *redis.Client
	prefix string
	log    *zap.Logger
}

func NewRedisNotifier(rdb *redis.Client, prefix string, log *zap.Logger) *RedisNotifier {
	return &RedisNotifier{
		rdb:    rdb,
		prefix: prefix,
		log:    log.With(zap.String("notifier", "redis")),
	}
}

func (n *RedisNotifier) channel(key string) string {
	return n.prefix + ":" + key
}

func (n *RedisNotifier) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	if err := n.rdb.Publish(ctx, n.channel(ev.Key), payload).Err(); err != nil {
		return fmt.Errorf("publish change event %s: %w", ev.Key, err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context, key string) (Subscription, error) {
	ps := n.rdb.Subscribe(ctx, n.channel(key))
	// wait for the subscription confirmation so no event is lost after return
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", key, err)
	}

	sub := &redisSub{
		ps:   ps,
		ch:   make(chan Event, subscriptionBuffer),
		done: make(chan struct{}),
	}
	go sub.pump(n.log)
	return sub, nil
}

type redisSub struct {
	ps   *redis.PubSub
	ch   chan Event
	done chan struct{}
	once sync.Once
}

func (s *redisSub) pump(log *zap.Logger) {
	defer close(s.done)
	defer close(s.ch)
	for msg := range s.ps.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Warn("Dropping malformed change event",
				zap.String("channel", msg.Channel),
				zap.Error(err))
			continue
		}
		select {
		case s.ch <- ev:
		default:
		}
	}
}

func (s *redisSub) Events() <-chan Event {
	return s.ch
}

func (s *redisSub) Close() error {
	var err error
	s.once.Do(func() {
		err = s.ps.Close()
		<-s.done
	})
	return err
}
