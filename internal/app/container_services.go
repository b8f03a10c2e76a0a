package app

import (
	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/courier"
	"service-dispatch/internal/service/delivery"
	"service-dispatch/internal/service/orders"
	"service-dispatch/internal/service/sellerorder"
	"service-dispatch/internal/transport/kafka"
)

const (
	nameRateLimitExceeded = "rate_limit_exceeded_total"
	nameTxRetries         = "tx_retries_total"
	nameOpenAssignments   = "dispatch_open_assignments"
)

func registerMetrics(container *dig.Container) error {
	counter := func(newFn func() prometheus.Counter) func(*prometheus.Registry) (prometheus.Counter, error) {
		return func(reg *prometheus.Registry) (prometheus.Counter, error) {
			c := newFn()
			return c, reg.Register(c)
		}
	}
	providers := []struct {
		fn   any
		opts []dig.ProvideOption
	}{
		{counter(metrics.NewRateLimitExceededTotal), []dig.ProvideOption{dig.Name(nameRateLimitExceeded)}},
		{counter(metrics.NewTxRetriesTotal), []dig.ProvideOption{dig.Name(nameTxRetries)}},
		{func(reg *prometheus.Registry) (prometheus.Gauge, error) {
			g := metrics.NewOpenAssignments()
			return g, reg.Register(g)
		}, []dig.ProvideOption{dig.Name(nameOpenAssignments)}},
		{func(reg *prometheus.Registry) (*prometheus.CounterVec, error) {
			v := metrics.NewNotificationsDroppedTotal()
			return v, reg.Register(v)
		}, nil},
		{func(reg *prometheus.Registry) (*metrics.Dispatch, error) {
			d := metrics.NewDispatch()
			return d, d.Register(reg)
		}, nil},
	}
	for _, p := range providers {
		if err := container.Provide(p.fn, p.opts...); err != nil {
			return err
		}
	}
	return nil
}

type runnerIn struct {
	dig.In
	Repo    *repository.DispatchRepo
	Logger  logx.Logger
	Config  *config.Config
	Retries prometheus.Counter `name:"tx_retries_total"`
}

func newTxRunner(in runnerIn) *repository.RetryingRunner {
	r := in.Config.TxRetry
	return repository.NewRetryingRunner(in.Repo, in.Logger, in.Retries, repository.RetryConfig{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   r.BaseDelay,
		MaxDelay:    r.MaxDelay,
	})
}

func newHub(cfg *config.Config, dropped *prometheus.CounterVec, logger logx.Logger) *notify.Hub {
	return notify.NewHub(cfg.Dispatch.HubBuffer, dropped.WithLabelValues("hub"), logger)
}

// instanceID tags this process' messages on the notifications topic.
type instanceID string

func newInstanceID() instanceID { return instanceID(uuid.NewString()) }

// newPublisher возвращает nil, если kafka не настроена
func newPublisher(cfg *config.Config, id instanceID, producer sarama.AsyncProducer, dropped *prometheus.CounterVec, logger logx.Logger) *notify.KafkaPublisher {
	if producer == nil {
		return nil
	}
	return notify.NewKafkaPublisher(producer, cfg.Kafka.NotificationsTopic, string(id), dropped.WithLabelValues("kafka"), logger)
}

type relayOut struct {
	dig.Out
	Consumer *kafka.Consumer `name:"notifications_relay"`
}

// newRelayConsumer: у каждого процесса своя группа, иначе реплики API делят партиции
// и подписчик на соседней реплике ничего не получит
func newRelayConsumer(cfg *config.Config, id instanceID, hub *notify.Hub, logger logx.Logger) (relayOut, error) {
	k := cfg.Kafka
	relay := notify.NewRelay(string(id), hub, logger)
	c, err := kafka.NewBroadcastConsumer(logger, k.Brokers, k.GroupID+".relay."+string(id), k.NotificationsTopic, relay.Handle)
	return relayOut{Consumer: c}, err
}

func newFanout(logger logx.Logger, hub *notify.Hub, pub *notify.KafkaPublisher) *notify.Fanout {
	sinks := []notify.Sink{hub}
	if pub != nil {
		sinks = append(sinks, pub)
	}
	return notify.NewFanout(logger, sinks...)
}

func deliveryOptions(cfg *config.Config) delivery.Options {
	return delivery.Options{
		MaxCandidates:    cfg.Dispatch.MaxCandidates,
		DeliveryFee:      cfg.Dispatch.DeliveryFee,
		OperationTimeout: cfg.Dispatch.OperationTimeout,
	}
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewDispatchRepo,
		func(pool *pgxpool.Pool) *repository.CourierRepo { return repository.NewCourierRepo(pool) },
		newTxRunner,
		newHub,
		newPublisher,
		newFanout,
		deliveryOptions,
		func(r *repository.RetryingRunner, n *notify.Fanout, m *metrics.Dispatch, opts delivery.Options, logger logx.Logger) *delivery.Coordinator {
			return delivery.NewCoordinator(r, n, m, opts, logger)
		},
		func(r *repository.RetryingRunner, n *notify.Fanout, m *metrics.Dispatch, opts delivery.Options, logger logx.Logger) *delivery.Resolver {
			return delivery.NewResolver(r, n, m, opts, logger)
		},
		func(r *repository.RetryingRunner, n *notify.Fanout, opts delivery.Options, logger logx.Logger) *delivery.Progression {
			return delivery.NewProgression(r, n, opts, logger)
		},
		func(repo *repository.DispatchRepo, cfg *config.Config) *delivery.Offers {
			return delivery.NewOffers(repo, cfg.Dispatch.OperationTimeout)
		},
		func(repo *repository.CourierRepo, cfg *config.Config, logger logx.Logger) *courier.Service {
			return courier.NewService(repo, cfg.Dispatch.OperationTimeout, logger)
		},
		func(r *repository.RetryingRunner, n *notify.Fanout, cfg *config.Config, logger logx.Logger) *sellerorder.Service {
			return sellerorder.NewService(r, n, cfg.Dispatch.OperationTimeout, logger)
		},
		func(c *delivery.Coordinator, s *sellerorder.Service, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(c, s, logger)
		},
	)
}

func registerMessaging(container *dig.Container) error {
	return provideAll(container,
		newInstanceID,
		newRelayConsumer,
		func(cfg *config.Config) (sarama.AsyncProducer, error) {
			return kafka.NewAsyncProducer(cfg.Kafka.Brokers, "service-dispatch")
		},
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			k := cfg.Kafka
			return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.OrdersTopic, p.Handle)
		},
	)
}
