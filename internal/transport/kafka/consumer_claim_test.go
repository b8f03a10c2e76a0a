package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/service/orders"
	testlog "service-dispatch/internal/testutil"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string              { return "t" }
func (c fakeClaim) Partition() int32           { return 0 }
func (c fakeClaim) InitialOffset() int64       { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, orders.Event) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: []byte("not-json")}
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())

	require.True(t, rec.Has("kafka bad json"))
}

func TestConsumeClaim_EmptyOrderID_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0

	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, orders.Event) error {
			calls++
			return nil
		},
	}
	h := &groupHandler{c: c}

	dto := EventDTO{
		OrderID: "   ",
		Status:  "ready_for_pickup",
	}
	b, _ := json.Marshal(dto)

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: b}
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Equal(t, 0, calls)

	require.True(t, rec.Has("kafka empty order_id"))
}

func TestConsumeClaim_HandlerError_SkipsButMarks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	sentinel := errors.New("boom")

	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, orders.Event) error {
			return sentinel
		},
	}
	h := &groupHandler{c: c}

	dto := EventDTO{OrderID: "o1", SellerID: 7, Status: "ready_for_pickup", CreatedAt: time.Now().UTC()}
	b, _ := json.Marshal(dto)

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: b}
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, rec.Has("kafka handle failed, skipping message"))
}

func TestConsumeClaim_Success_Marks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0

	c := &Consumer{
		logger: rec.Logger(),
		handler: func(_ context.Context, ev orders.Event) error {
			calls++
			require.Equal(t, "o1", ev.OrderID)
			require.Equal(t, int64(7), ev.SellerID)
			return nil
		},
	}
	h := &groupHandler{c: c}

	dto := EventDTO{OrderID: "o1", SellerID: 7, Status: "ready_for_pickup"}
	b, _ := json.Marshal(dto)

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: b}
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, sess.MarkedCount())
}

func TestConsumeClaim_TransientError_Retried(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0

	c := &Consumer{
		logger:   rec.Logger(),
		attempts: 3,
		handler: func(context.Context, orders.Event) error {
			calls++
			if calls < 3 {
				return errors.New("db down")
			}
			return nil
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{OrderID: "o1", Status: "ready_for_pickup"})
	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: b}
	close(msgCh)

	require.NoError(t, h.ConsumeClaim(sess, fakeClaim{ch: msgCh}))
	require.Equal(t, 3, calls)
	require.Equal(t, 1, sess.MarkedCount())
	require.False(t, rec.Has("kafka handle failed, skipping message"))
}

func TestConsumeClaim_PermanentError_NotRetried(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0

	c := &Consumer{
		logger:   rec.Logger(),
		attempts: 5,
		handler: func(context.Context, orders.Event) error {
			calls++
			return Permanent(errors.New("bad payload"))
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{OrderID: "o1", Status: "ready_for_pickup"})
	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: b}
	close(msgCh)

	require.NoError(t, h.ConsumeClaim(sess, fakeClaim{ch: msgCh}))
	require.Equal(t, 1, calls)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, rec.Has("kafka handle failed, skipping message"))
}

func TestPermanentError_Unwraps(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("x")
	err := Permanent(sentinel)
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, "x", err.Error())
	require.Equal(t, "permanent error", PermanentError{}.Error())
}


func TestConsumeClaim_CodedDomainError_NotRetried(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0

	c := &Consumer{
		logger:   rec.Logger(),
		attempts: 4,
		handler: func(context.Context, orders.Event) error {
			calls++
			return apperr.New(apperr.ErrNotFound, apperr.CodeOrderNotFound, "order not found")
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{OrderID: "o1", SellerID: 3, Status: "cancelled"})
	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: b}
	close(msgCh)

	require.NoError(t, h.ConsumeClaim(sess, fakeClaim{ch: msgCh}))
	require.Equal(t, 1, calls)
	require.Equal(t, 1, sess.MarkedCount())
}

func TestDecodeEvent(t *testing.T) {
	t.Parallel()

	ev, err := decodeEvent([]byte(`{"order_id":" o-9 ","seller_id":7,"status":"ready_for_pickup"}`))
	require.NoError(t, err)
	require.Equal(t, "o-9", ev.OrderID)
	require.Equal(t, int64(7), ev.SellerID)

	_, err = decodeEvent([]byte(`{"order_id":"   "}`))
	require.ErrorIs(t, err, errEmptyOrderID)

	_, err = decodeEvent([]byte(`{"seller_id":"x"}`))
	require.Error(t, err)
	require.NotErrorIs(t, err, errEmptyOrderID)
}

func TestPermanent_NilStaysNil(t *testing.T) {
	t.Parallel()

	require.NoError(t, Permanent(nil))
	require.False(t, isPermanent(errors.New("dial tcp: refused")))
	require.True(t, isPermanent(Permanent(errors.New("x"))))
}

func TestConsumeClaim_RawHandlerGetsValueAndRetries(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var got [][]byte
	calls := 0

	c := &Consumer{
		logger:   rec.Logger(),
		attempts: 3,
		raw: func(_ context.Context, value []byte) error {
			calls++
			if calls == 1 {
				return errors.New("hub busy")
			}
			got = append(got, value)
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 2)
	msgCh <- &sarama.ConsumerMessage{Topic: "dispatch.notifications", Value: []byte(`{"type":"x"}`)}
	msgCh <- &sarama.ConsumerMessage{Topic: "dispatch.notifications", Value: []byte(`not json at all`)}
	close(msgCh)

	require.NoError(t, h.ConsumeClaim(sess, fakeClaim{ch: msgCh}))
	require.Equal(t, 3, calls)
	require.Equal(t, [][]byte{[]byte(`{"type":"x"}`), []byte(`not json at all`)}, got)
	require.Equal(t, 2, sess.MarkedCount())
	require.False(t, rec.Has("kafka bad json"))
}
