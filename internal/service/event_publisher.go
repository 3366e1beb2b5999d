package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/muna8646/airtisan/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const (
	maxPublishRetries = 3
	publishQueueSize  = 256
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type pendingEvent struct {
	ctx       context.Context
	eventType string
	key       string
	msg       kafka.Message
}

// KafkaEventPublisher queues events and writes them from a single background
// worker, so Publish never waits on the broker.
type KafkaEventPublisher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	backoff time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan pendingEvent
	done   chan struct{}
	stop   context.Context
	cancel context.CancelFunc
}

func CreateKafkaEventPublisher(writer *kafka.Writer, breaker *gobreaker.CircuitBreaker[struct{}]) *KafkaEventPublisher {
	return newKafkaEventPublisher(writer, breaker, 200*time.Millisecond)
}

func newKafkaEventPublisher(writer messageWriter, breaker *gobreaker.CircuitBreaker[struct{}], backoff time.Duration) *KafkaEventPublisher {
	stop, cancel := context.WithCancel(context.Background())
	p := &KafkaEventPublisher{
		writer:  writer,
		breaker: breaker,
		backoff: backoff,
		queue:   make(chan pendingEvent, publishQueueSize),
		done:    make(chan struct{}),
		stop:    stop,
		cancel:  cancel,
	}

	go p.run()

	return p
}

// Publish drops the event when the queue is full or the publisher is closed.
func (p *KafkaEventPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) {
	jsonMsg, err := json.Marshal(dto.KafkaMessage{
		EventType:  eventType,
		OccurredAt: time.Now().UnixMilli(),
		Data:       data,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PublishEvent").Str("event_type", eventType).Msg("")
		return
	}

	event := pendingEvent{
		// keeps the request logger without inheriting the request deadline
		ctx:       log.Ctx(ctx).WithContext(p.stop),
		eventType: eventType,
		key:       key,
		msg:       kafka.Message{Key: []byte(key), Value: jsonMsg},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		log.Ctx(ctx).Error().Str("component", "PublishEvent").Str("event_type", eventType).Str("key", key).Msg("publisher closed, event dropped")
		return
	}

	select {
	case p.queue <- event:
	default:
		log.Ctx(ctx).Error().Str("component", "PublishEvent").Str("event_type", eventType).Str("key", key).Msg("event queue full, event dropped")
	}
}

// Close stops accepting events and waits for queued ones to be written. When
// ctx ends first, pending retries are abandoned.
func (p *KafkaEventPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-p.done
		return ctx.Err()
	}
}

func (p *KafkaEventPublisher) run() {
	defer close(p.done)

	for event := range p.queue {
		p.deliver(event.ctx, event.eventType, event.key, event.msg)
	}
}

func (p *KafkaEventPublisher) deliver(ctx context.Context, eventType string, key string, msg kafka.Message) {
	var err error
	for i := 0; i < maxPublishRetries; i++ {
		_, err = p.breaker.Execute(func() (struct{}, error) {
			return struct{}{}, p.writer.WriteMessages(ctx, msg)
		})
		if err == nil {
			return
		}

		log.Ctx(ctx).Warn().Err(err).Str("component", "PublishEvent").Str("event_type", eventType).
			Int("attempt", i+1).Msg("failed to write kafka message")

		if errors.Is(err, gobreaker.ErrOpenState) || i == maxPublishRetries-1 {
			break
		}
		if !wait(ctx, p.backoff*time.Duration(i+1)) {
			break
		}
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "PublishEvent").Str("event_type", eventType).Str("key", key).Msg("event dropped")
}

// wait reports false when ctx ends before d elapses.
func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) {
	log.Ctx(ctx).Debug().Str("component", "PublishEvent").Str("event_type", eventType).Str("key", key).Msg("no broker configured")
}
