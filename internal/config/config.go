package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Dispatch  Dispatch
	TxRetry   TxRetry
	RateLimit RateLimit
	Log       Log
	Jobs      Jobs
	Debug     Debug
	Worker    Worker
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Kafka stores broker settings. Empty Brokers disables Kafka.
type Kafka struct {
	Brokers            []string
	GroupID            string
	OrdersTopic        string
	NotificationsTopic string
}

// Dispatch stores assignment engine settings.
type Dispatch struct {
	MaxCandidates    int
	DeliveryFee      int64
	OperationTimeout time.Duration
	SSEHeartbeat     time.Duration
	HubBuffer        int
}

// TxRetry stores retry settings for deadlocked or serialization-failed transactions.
type TxRetry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores per-caller token bucket settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Log stores logger settings.
type Log struct {
	Level   string
	Backend string
}

// Jobs stores cron schedules.
type Jobs struct {
	OpenAssignmentsSchedule string
}

// Debug stores the profiling listener settings. Empty Addr disables it.
type Debug struct {
	Addr       string
	User       string
	Pass       string
	AllowCIDRs []string
}

// Worker stores worker-only settings. MetricsAddr "" means no /metrics listener.
type Worker struct {
	MetricsAddr string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Default()

	var errs []error
	e := envReader{errs: &errs}

	cfg.Port = e.asInt("PORT", cfg.Port)

	cfg.DB.Host = e.asString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = e.asString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = e.asString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = e.asString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = e.asString("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		errs = append(errs, fmt.Errorf("POSTGRES_PORT: %w", err))
	}

	cfg.Kafka.Brokers = e.asList("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.GroupID = e.asString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.OrdersTopic = e.asString("KAFKA_ORDERS_TOPIC", cfg.Kafka.OrdersTopic)
	cfg.Kafka.NotificationsTopic = e.asString("KAFKA_NOTIFICATIONS_TOPIC", cfg.Kafka.NotificationsTopic)

	cfg.Dispatch.MaxCandidates = e.asInt("DISPATCH_MAX_CANDIDATES", cfg.Dispatch.MaxCandidates)
	cfg.Dispatch.DeliveryFee = e.asInt64("DISPATCH_DELIVERY_FEE", cfg.Dispatch.DeliveryFee)
	cfg.Dispatch.OperationTimeout = e.asDuration("DISPATCH_OPERATION_TIMEOUT", cfg.Dispatch.OperationTimeout)
	cfg.Dispatch.SSEHeartbeat = e.asDuration("DISPATCH_SSE_HEARTBEAT", cfg.Dispatch.SSEHeartbeat)
	cfg.Dispatch.HubBuffer = e.asInt("DISPATCH_HUB_BUFFER", cfg.Dispatch.HubBuffer)

	cfg.TxRetry.MaxAttempts = e.asInt("TX_RETRY_MAX_ATTEMPTS", cfg.TxRetry.MaxAttempts)
	cfg.TxRetry.BaseDelay = e.asDuration("TX_RETRY_BASE_DELAY", cfg.TxRetry.BaseDelay)
	cfg.TxRetry.MaxDelay = e.asDuration("TX_RETRY_MAX_DELAY", cfg.TxRetry.MaxDelay)

	cfg.RateLimit.Enabled = e.asBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Rate = e.asFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = e.asInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.TTL = e.asDuration("RATE_LIMIT_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = e.asInt("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)

	cfg.Log.Level = e.asString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Backend = e.asString("LOG_BACKEND", cfg.Log.Backend)

	cfg.Jobs.OpenAssignmentsSchedule = e.asString("JOBS_OPEN_ASSIGNMENTS_SCHEDULE", cfg.Jobs.OpenAssignmentsSchedule)

	cfg.Debug.Addr = e.asString("DEBUG_ADDR", cfg.Debug.Addr)
	cfg.Debug.User = e.asString("DEBUG_USER", cfg.Debug.User)
	cfg.Debug.Pass = e.asString("DEBUG_PASSWORD", cfg.Debug.Pass)
	cfg.Debug.AllowCIDRs = e.asList("DEBUG_ALLOW_CIDRS", cfg.Debug.AllowCIDRs)

	// пустая переменная = дефолт, поэтому выключаем явным off
	cfg.Worker.MetricsAddr = e.asString("WORKER_METRICS_ADDR", cfg.Worker.MetricsAddr)
	if strings.EqualFold(cfg.Worker.MetricsAddr, "off") {
		cfg.Worker.MetricsAddr = ""
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn, error")
	pflag.IntVar(&cfg.Dispatch.MaxCandidates, "max-candidates", cfg.Dispatch.MaxCandidates, "couriers offered each assignment")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.Dispatch.MaxCandidates <= 0 {
		errs = append(errs, fmt.Errorf("invalid max candidates: %d", c.Dispatch.MaxCandidates))
	}
	if c.Dispatch.DeliveryFee < 0 {
		errs = append(errs, fmt.Errorf("invalid delivery fee: %d", c.Dispatch.DeliveryFee))
	}
	if c.Dispatch.OperationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid operation timeout: %s", c.Dispatch.OperationTimeout))
	}
	if c.TxRetry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("invalid tx retry attempts: %d", c.TxRetry.MaxAttempts))
	}
	if len(c.Kafka.Brokers) > 0 && (c.Kafka.GroupID == "" || c.Kafka.OrdersTopic == "") {
		errs = append(errs, errors.New("kafka brokers set but group id or orders topic is empty"))
	}
	for _, cidr := range c.Debug.AllowCIDRs {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errs = append(errs, fmt.Errorf("invalid debug cidr %q: %w", cidr, err))
		}
	}
	return errors.Join(errs...)
}

// envReader reads typed environment variables, collecting parse errors.
type envReader struct {
	errs *[]error
}

func (e envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e envReader) fail(key string, err error) {
	*e.errs = append(*e.errs, fmt.Errorf("%s: %w", key, err))
}

func (e envReader) asString(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e envReader) asInt(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return n
}

func (e envReader) asInt64(key string, def int64) int64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return n
}

func (e envReader) asFloat(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return f
}

func (e envReader) asBool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return b
}

func (e envReader) asDuration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return d
}

func (e envReader) asList(key string, def []string) []string {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
