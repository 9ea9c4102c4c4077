package constants

import "time"

const (
	PasswordMinLength = 5
	PasswordMaxLength = 72
	NameMaxLength     = 255
	EmailMaxLength    = 254

	BcryptCost = 12

	AuthTokenSize = 32

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRequestTimeout = 5 * time.Second

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitTokenRequestsPerSecond   = 1
	RateLimitTokenBurst               = 5
	RateLimitCreateRequestsPerSecond  = 1
	RateLimitCreateBurst              = 3
	RateLimitGeneralRequestsPerSecond = 10
	RateLimitGeneralBurst             = 20

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
