package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	Reference ReferenceConfig `yaml:"reference"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
}

// ServerConfig holds settings of the operational HTTP server (health, metrics).
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"30s"`
	LockTimeout      time.Duration `yaml:"lock_timeout"       env:"DATABASE_LOCK_TIMEOUT"       env-default:"5s"`
	HealthCheck      time.Duration `yaml:"health_check"       env:"DATABASE_HEALTH_CHECK"       env-default:"30s"`
	ApplicationName  string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"budget-engine"`
}

// RedisConfig holds the notification stream settings.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled"         env:"REDIS_ENABLED"         env-default:"false"`
	Addr           string        `yaml:"addr"            env:"REDIS_ADDR"            env-default:"localhost:6379"`
	Password       string        `yaml:"password"        env:"REDIS_PASSWORD"`
	DB             int           `yaml:"db"              env:"REDIS_DB"              env-default:"0"`
	Stream         string        `yaml:"stream"          env:"REDIS_STREAM"          env-default:"budget:notifications"`
	StreamMaxLen   int64         `yaml:"stream_max_len"  env:"REDIS_STREAM_MAX_LEN"  env-default:"100000"`
	PublishTimeout time.Duration `yaml:"publish_timeout" env:"REDIS_PUBLISH_TIMEOUT" env-default:"2s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ReferenceConfig holds the prefixes of generated document numbers.
type ReferenceConfig struct {
	ExpenditurePrefix string `yaml:"expenditure_prefix" env:"REFERENCE_EXPENDITURE_PREFIX" env-default:"EXP"`
	RetirementPrefix  string `yaml:"retirement_prefix"  env:"REFERENCE_RETIREMENT_PREFIX"  env-default:"RET"`
}

// ReconcileConfig holds ledger reconciliation settings. A zero Interval
// disables the in-process schedule; cmd/reconcile still works.
type ReconcileConfig struct {
	Workers  int           `yaml:"workers"  env:"RECONCILE_WORKERS"  env-default:"4"`
	Timeout  time.Duration `yaml:"timeout"  env:"RECONCILE_TIMEOUT"  env-default:"10m"`
	Interval time.Duration `yaml:"interval" env:"RECONCILE_INTERVAL" env-default:"0s"`
}

// Addr returns the host:port the ops server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
