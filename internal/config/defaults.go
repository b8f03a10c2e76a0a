package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "dispatch",
}

var defaultKafka = Kafka{
	GroupID:            "service-dispatch",
	OrdersTopic:        "orders.events",
	NotificationsTopic: "dispatch.notifications",
}

var defaultDispatch = Dispatch{
	MaxCandidates:    5,
	DeliveryFee:      4900,
	OperationTimeout: 3 * time.Second,
	SSEHeartbeat:     25 * time.Second,
	HubBuffer:        16,
}

var defaultTxRetry = TxRetry{
	MaxAttempts: 3,
	BaseDelay:   20 * time.Millisecond,
	MaxDelay:    200 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 100_000,
}

var defaultLog = Log{
	Level:   "info",
	Backend: "slog",
}

var defaultJobs = Jobs{
	OpenAssignmentsSchedule: "*/15 * * * * *",
}

var defaultWorker = Worker{
	MetricsAddr: ":9091",
}

// Default returns a config with every setting at its default and kafka switched off.
func Default() *Config {
	return &Config{
		Port:      defaultPort,
		DB:        defaultDB,
		Kafka:     defaultKafka,
		Dispatch:  defaultDispatch,
		TxRetry:   defaultTxRetry,
		RateLimit: defaultRateLimit,
		Log:       defaultLog,
		Jobs:      defaultJobs,
		Worker:    defaultWorker,
	}
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default dispatch settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultTxRetry returns the default transaction retry settings.
func DefaultTxRetry() TxRetry {
	return defaultTxRetry
}
