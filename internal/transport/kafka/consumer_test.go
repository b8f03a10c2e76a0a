package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/service/orders"
	testlog "service-dispatch/internal/testutil"
)

type fakeGroup struct {
	calls  int
	closed bool
}

func (g *fakeGroup) Consume(ctx context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	g.calls++
	<-ctx.Done()
	return nil
}
func (g *fakeGroup) Errors() <-chan error {
	ch := make(chan error)
	close(ch)
	return ch
}
func (g *fakeGroup) Close() error {
	g.closed = true
	return nil
}
func (g *fakeGroup) Pause(map[string][]int32)  {}
func (g *fakeGroup) Resume(map[string][]int32) {}
func (g *fakeGroup) PauseAll()                 {}
func (g *fakeGroup) ResumeAll()                {}

func TestNewConsumer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	got, err := NewConsumer(rec.Logger(), nil, "gid", "topic", func(context.Context, orders.Event) error { return nil })
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "", "topic", nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "   ", nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

// not parallel: swaps the package-level constructor
func TestNewConsumer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	sentinel := errors.New("boom")
	newConsumerGroup = func(_ []string, _ string, _ *sarama.Config) (sarama.ConsumerGroup, error) {
		return nil, sentinel
	}

	rec := testlog.New()
	got, err := NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "topic", nil)
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, got)
}

func TestNewConsumer_UsesOldestOffset(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	g := &fakeGroup{}
	newConsumerGroup = func(brokers []string, groupID string, cfg *sarama.Config) (sarama.ConsumerGroup, error) {
		require.Equal(t, []string{"b:9092"}, brokers)
		require.Equal(t, "dispatch", groupID)
		require.Equal(t, sarama.OffsetOldest, cfg.Consumer.Offsets.Initial)
		return g, nil
	}

	c, err := NewConsumer(nil, []string{"b:9092"}, "dispatch", "orders.events", nil)
	require.NoError(t, err)
	require.NotNil(t, c)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, c.Run(ctx), context.DeadlineExceeded)
	require.GreaterOrEqual(t, g.calls, 1)

	require.NoError(t, c.Close())
	require.True(t, g.closed)
}

func TestConsumer_NilIsNoop(t *testing.T) {
	t.Parallel()

	var c *Consumer
	require.NoError(t, c.Run(context.Background()))
	require.NoError(t, c.Close())
}

func TestNewAsyncProducer_NoBrokers(t *testing.T) {
	t.Parallel()

	p, err := NewAsyncProducer(nil, "dispatch")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestNewAsyncProducer_Config(t *testing.T) {
	orig := newAsyncProducer
	t.Cleanup(func() { newAsyncProducer = orig })

	sentinel := errors.New("no brokers reachable")
	newAsyncProducer = func(addrs []string, cfg *sarama.Config) (sarama.AsyncProducer, error) {
		require.Equal(t, []string{"b:9092"}, addrs)
		require.Equal(t, "dispatch", cfg.ClientID)
		require.True(t, cfg.Producer.Return.Errors)
		require.False(t, cfg.Producer.Return.Successes)
		return nil, sentinel
	}

	_, err := NewAsyncProducer([]string{"b:9092"}, "dispatch")
	require.ErrorIs(t, err, sentinel)
}

func TestNewBroadcastConsumer_StartsAtNewest(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	newConsumerGroup = func(_ []string, groupID string, cfg *sarama.Config) (sarama.ConsumerGroup, error) {
		require.Equal(t, "service-dispatch.relay.abc", groupID)
		require.Equal(t, sarama.OffsetNewest, cfg.Consumer.Offsets.Initial)
		return &fakeGroup{}, nil
	}

	c, err := NewBroadcastConsumer(nil, []string{"b:9092"}, "service-dispatch.relay.abc", "dispatch.notifications",
		func(context.Context, []byte) error { return nil })
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, c.raw)
	require.Nil(t, c.handler)
}

func TestNewBroadcastConsumer_NoTopic(t *testing.T) {
	t.Parallel()

	c, err := NewBroadcastConsumer(nil, []string{"b:9092"}, "g", "", nil)
	require.NoError(t, err)
	require.Nil(t, c)
}
