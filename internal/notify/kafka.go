package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/IBM/sarama"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// DefaultTopic is where push events are mirrored for out-of-process consumers.
const DefaultTopic = "dispatch.notifications"

type message struct {
	// Origin is the publishing process; Relay skips its own messages.
	Origin        string `json:"origin,omitempty"`
	RecipientRole string `json:"recipient_role"`
	RecipientID   int64  `json:"recipient_id"`
	Type          string `json:"type"`
	Message       string `json:"message"`
}

// KafkaPublisher mirrors push events onto a Kafka topic through an async producer.
type KafkaPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	origin   string
	dropped  counter
	logger   logx.Logger

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewKafkaPublisher wraps producer. The producer must be configured with Return.Errors.
// origin tags every message with the publishing process.
func NewKafkaPublisher(producer sarama.AsyncProducer, topic, origin string, dropped counter, logger logx.Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = logx.Nop()
	}
	p := &KafkaPublisher{
		producer: producer,
		topic:    topic,
		origin:   origin,
		dropped:  dropped,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go p.drainErrors()
	return p
}

func (p *KafkaPublisher) drainErrors() {
	defer close(p.done)
	for perr := range p.producer.Errors() {
		p.drop()
		p.logger.Error("notify kafka publish failed", logx.Any("err", perr.Err))
	}
}

// Notify enqueues ev without blocking. A saturated producer drops the event.
func (p *KafkaPublisher) Notify(_ context.Context, to domain.Recipient, ev domain.Event) {
	b, err := json.Marshal(message{
		Origin:        p.origin,
		RecipientRole: string(to.Role),
		RecipientID:   to.ID,
		Type:          string(ev.Type),
		Message:       ev.Message,
	})
	if err != nil {
		p.logger.Error("notify kafka marshal", logx.Any("err", err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(string(to.Role) + ":" + strconv.FormatInt(to.ID, 10)),
		Value: sarama.ByteEncoder(b),
	}

	select {
	case p.producer.Input() <- msg:
	default:
		p.drop()
		p.logger.Warn("notify kafka dropped, producer saturated",
			logx.String("type", string(ev.Type)),
			logx.Int64("recipient_id", to.ID),
		)
	}
}

func (p *KafkaPublisher) drop() {
	if p.dropped != nil {
		p.dropped.Inc()
	}
}

// Close flushes the producer and waits for the error drain to finish.
func (p *KafkaPublisher) Close() error {
	if p == nil {
		return nil
	}
	p.closeOnce.Do(func() {
		p.closeErr = p.producer.Close()
		<-p.done
	})
	return p.closeErr
}

var _ Sink = (*KafkaPublisher)(nil)
