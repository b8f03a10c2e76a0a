package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

var newAsyncProducer = sarama.NewAsyncProducer

// NewAsyncProducer creates a fire-and-forget producer for the notification mirror.
// It returns nil, nil when no brokers are configured.
func NewAsyncProducer(brokers []string, clientID string) (sarama.AsyncProducer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	if clientID != "" {
		cfg.ClientID = clientID
	}
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true
	cfg.Producer.Flush.Frequency = 100 * time.Millisecond
	cfg.Producer.Retry.Max = 3
	cfg.ChannelBufferSize = 1024

	return newAsyncProducer(brokers, cfg)
}
