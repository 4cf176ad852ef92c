// Package config loads the configuration of the access client from flags,
// environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load,
	// e.g. FLOW_ACCESS_ADDRESS.
	EnvPrefix = "FLOW"

	ConfigFileFlag       = "config"
	accessAddressFlag    = "access-address"
	requestTimeoutFlag   = "request-timeout"
	sealPollIntervalFlag = "seal-poll-interval"
	sealTimeoutFlag      = "seal-timeout"
	maxGasLimitFlag      = "max-gas-limit"
	maxMessageSizeFlag   = "max-message-size"
	eventEncodingFlag    = "event-encoding"
	metricsAddressFlag   = "metrics-address"

	circuitBreakerMaxFailuresFlag    = "circuit-breaker-max-failures"
	circuitBreakerRestoreTimeoutFlag = "circuit-breaker-restore-timeout"
	rateLimitFlag                    = "rate-limit"
	rateLimitBurstFlag               = "rate-limit-burst"
)

const (
	EventEncodingJSONCDC = "json-cdc"
	EventEncodingCCF     = "ccf"
)

// ClientConfig is the configuration of the access client.
type ClientConfig struct {
	// AccessAddress is the host:port of the access node gRPC API.
	AccessAddress string `mapstructure:"access-address" validate:"required,hostname_port"`
	// RequestTimeout bounds every request, zero disables the timeout.
	RequestTimeout time.Duration `mapstructure:"request-timeout" validate:"gte=0"`
	// SealPollInterval is the interval at which a submitted transaction is polled.
	SealPollInterval time.Duration `mapstructure:"seal-poll-interval" validate:"gt=0"`
	// SealTimeout bounds the wait for a transaction seal, zero waits forever.
	SealTimeout time.Duration `mapstructure:"seal-timeout" validate:"gte=0"`
	// MaxGasLimit is the highest gas limit accepted by client-side validation.
	MaxGasLimit uint64 `mapstructure:"max-gas-limit" validate:"gt=0"`
	// MaxMessageSize is the maximum size of gRPC messages in bytes.
	MaxMessageSize int `mapstructure:"max-message-size" validate:"gt=0"`
	// EventEncoding is the event payload encoding requested from the access node.
	EventEncoding string `mapstructure:"event-encoding" validate:"oneof=json-cdc ccf"`
	// MetricsAddress is the address of the prometheus endpoint, empty disables it.
	MetricsAddress string `mapstructure:"metrics-address" validate:"omitempty,hostname_port"`
	// CircuitBreakerMaxFailures is the number of consecutive failed requests
	// after which requests are rejected, zero disables the circuit breaker.
	CircuitBreakerMaxFailures uint32 `mapstructure:"circuit-breaker-max-failures"`
	// CircuitBreakerRestoreTimeout is how long requests are rejected once the
	// circuit breaker opened.
	CircuitBreakerRestoreTimeout time.Duration `mapstructure:"circuit-breaker-restore-timeout" validate:"gt=0"`
	// RateLimit is the number of requests per second, zero disables the limit.
	RateLimit float64 `mapstructure:"rate-limit" validate:"gte=0"`
	// RateLimitBurst is the number of requests allowed at once.
	RateLimitBurst int `mapstructure:"rate-limit-burst" validate:"gt=0"`
}

// DefaultClientConfig returns the configuration for a local emulator.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		AccessAddress:    "localhost:3569",
		RequestTimeout:   30 * time.Second,
		SealPollInterval: time.Second,
		SealTimeout:      5 * time.Minute,
		MaxGasLimit:      9999,
		MaxMessageSize:   20 << 20, // 20 MiB
		EventEncoding:    EventEncodingCCF,

		CircuitBreakerRestoreTimeout: time.Minute,
		RateLimitBurst:               1,
	}
}

// BindFlags registers the client flags with their default values.
func BindFlags(flags *pflag.FlagSet) {
	defaults := DefaultClientConfig()

	flags.String(ConfigFileFlag, "", "path to a config file (yaml, json or toml)")
	flags.String(accessAddressFlag, defaults.AccessAddress, "host:port of the access node gRPC API")
	flags.Duration(requestTimeoutFlag, defaults.RequestTimeout, "timeout of a single access API request, 0 disables the timeout")
	flags.Duration(sealPollIntervalFlag, defaults.SealPollInterval, "interval at which the result of a submitted transaction is polled")
	flags.Duration(sealTimeoutFlag, defaults.SealTimeout, "maximum time to wait for a transaction to be sealed, 0 waits forever")
	flags.Uint64(maxGasLimitFlag, defaults.MaxGasLimit, "maximum gas limit accepted when validating transactions")
	flags.Int(maxMessageSizeFlag, defaults.MaxMessageSize, "maximum size of gRPC messages in bytes")
	flags.String(eventEncodingFlag, defaults.EventEncoding, "event payload encoding requested from the access node (json-cdc or ccf)")
	flags.String(metricsAddressFlag, defaults.MetricsAddress, "address serving prometheus metrics while a command runs, e.g. :8080")
	flags.Uint32(circuitBreakerMaxFailuresFlag, defaults.CircuitBreakerMaxFailures, "consecutive failed requests after which requests are rejected, 0 disables the circuit breaker")
	flags.Duration(circuitBreakerRestoreTimeoutFlag, defaults.CircuitBreakerRestoreTimeout, "duration requests are rejected once the circuit breaker opened")
	flags.Float64(rateLimitFlag, defaults.RateLimit, "maximum access API requests per second, 0 disables the limit")
	flags.Int(rateLimitBurstFlag, defaults.RateLimitBurst, "maximum access API requests sent at once")
}

// Load reads the configuration from v. Values are resolved from flags bound
// to v, FLOW_ prefixed environment variables, the config file named by the
// config key and the defaults, in that order.
func Load(v *viper.Viper) (ClientConfig, error) {
	defaults := DefaultClientConfig()
	v.SetDefault(accessAddressFlag, defaults.AccessAddress)
	v.SetDefault(requestTimeoutFlag, defaults.RequestTimeout)
	v.SetDefault(sealPollIntervalFlag, defaults.SealPollInterval)
	v.SetDefault(sealTimeoutFlag, defaults.SealTimeout)
	v.SetDefault(maxGasLimitFlag, defaults.MaxGasLimit)
	v.SetDefault(maxMessageSizeFlag, defaults.MaxMessageSize)
	v.SetDefault(eventEncodingFlag, defaults.EventEncoding)
	v.SetDefault(metricsAddressFlag, defaults.MetricsAddress)
	v.SetDefault(circuitBreakerMaxFailuresFlag, defaults.CircuitBreakerMaxFailures)
	v.SetDefault(circuitBreakerRestoreTimeoutFlag, defaults.CircuitBreakerRestoreTimeout)
	v.SetDefault(rateLimitFlag, defaults.RateLimit)
	v.SetDefault(rateLimitBurstFlag, defaults.RateLimitBurst)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(ConfigFileFlag); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return ClientConfig{}, fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("could not decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return ClientConfig{}, err
	}

	return cfg, nil
}

// Validate checks every field of the configuration.
func (c ClientConfig) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("could not validate config: %w", err)
	}

	fields := make([]string, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fields[i] = fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag())
	}
	return fmt.Errorf("invalid config: %s: %w", strings.Join(fields, ", "), err)
}
