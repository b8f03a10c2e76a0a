package kafka

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/orders"
)

// HandleFunc processes a single orders.Event from Kafka
type HandleFunc func(context.Context, orders.Event) error

// RawHandleFunc processes an undecoded message value.
type RawHandleFunc func(ctx context.Context, value []byte) error

const (
	defaultHandleAttempts = 3
	defaultRetryDelay     = 200 * time.Millisecond
)

var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and dispatches events to a handler
type Consumer struct {
	group      sarama.ConsumerGroup
	topic      string
	handler    HandleFunc
	raw        RawHandleFunc
	logger     logx.Logger
	attempts   int
	retryDelay time.Duration
}

// NewConsumer creates a new Kafka consumer. It returns nil, nil when Kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	c, err := newConsumer(logger, brokers, groupID, topic, sarama.OffsetOldest)
	if c != nil {
		c.handler = h
	}
	return c, err
}

// NewBroadcastConsumer reads topic from the newest offset and hands raw values to h.
// groupID should be unique per process so that every instance sees every message.
func NewBroadcastConsumer(logger logx.Logger, brokers []string, groupID, topic string, h RawHandleFunc) (*Consumer, error) {
	c, err := newConsumer(logger, brokers, groupID, topic, sarama.OffsetNewest)
	if c != nil {
		c.raw = h
	}
	return c, err
}

func newConsumer(logger logx.Logger, brokers []string, groupID, topic string, initial int64) (*Consumer, error) {
	// не стратую если у кафки нет настроек
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = initial
	cfg.Consumer.Return.Errors = false

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:      group,
		topic:      topic,
		logger:     logger,
		attempts:   defaultHandleAttempts,
		retryDelay: defaultRetryDelay,
	}, nil
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.logger.Error("kafka consume error", logx.Err(err))
			if !sleepCtx(ctx, time.Second) {
				return ctx.Err()
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close closes the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if h.c.raw != nil {
			h.processRaw(sess.Context(), msg)
		} else {
			h.processEvent(sess.Context(), msg)
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}

func (h *groupHandler) processEvent(ctx context.Context, msg *sarama.ConsumerMessage) {
	ev, err := decodeEvent(msg.Value)
	switch {
	case errors.Is(err, errEmptyOrderID):
		h.c.logger.Warn("kafka empty order_id", logx.Int64("offset", msg.Offset))
		return
	case err != nil:
		h.c.logger.Warn("kafka bad json", logx.Err(err), logx.Int64("offset", msg.Offset))
		return
	}

	err = h.retry(ctx, func(ctx context.Context) error { return h.c.handler(ctx, ev) })
	if err != nil {
		h.c.logger.Error("kafka handle failed, skipping message",
			logx.OrderID(ev.OrderID),
			logx.String("status", ev.Status),
			logx.Err(err),
		)
	}
}

func (h *groupHandler) processRaw(ctx context.Context, msg *sarama.ConsumerMessage) {
	err := h.retry(ctx, func(ctx context.Context) error { return h.c.raw(ctx, msg.Value) })
	if err != nil {
		h.c.logger.Error("kafka handle failed, skipping message",
			logx.String("topic", msg.Topic),
			logx.Int64("offset", msg.Offset),
			logx.Err(err),
		)
	}
}

// retry reruns fn on transient failures a bounded number of times. Permanent errors are not retried.
func (h *groupHandler) retry(ctx context.Context, fn func(context.Context) error) error {
	attempts := h.c.attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if isPermanent(err) || i == attempts {
			return err
		}
		if !sleepCtx(ctx, h.c.retryDelay) {
			return err
		}
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
