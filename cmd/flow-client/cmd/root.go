package cmd

import (
	"fmt"
	"os"

	"github.com/onflow/flow/protobuf/go/flow/entities"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/onflow/flow-client-go/access"
	"github.com/onflow/flow-client-go/client"
	"github.com/onflow/flow-client-go/config"
	"github.com/onflow/flow-client-go/module"
	"github.com/onflow/flow-client-go/module/metrics"
)

var (
	flagLogLevel string

	log  = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	conf = viper.New()
	cfg  config.ClientConfig

	clientMetrics     module.AccessClientMetrics          = metrics.NewNoopCollector()
	validationMetrics module.TransactionValidationMetrics = metrics.NewNoopCollector()
	metricsServer     *metrics.Server
	metricsRegistry   prometheus.Registerer
)

var rootCmd = &cobra.Command{
	Use:                "flow-client",
	Short:              "Build, sign and submit Flow transactions",
	SilenceUsage:       true,
	PersistentPreRunE:  initConfig,
	PersistentPostRunE: stopMetrics,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.BindFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(decodeCmd)
}

func initConfig(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log = log.Level(level)

	if err := conf.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("could not bind flags: %w", err)
	}

	cfg, err = config.Load(conf)
	if err != nil {
		return err
	}

	if cfg.MetricsAddress != "" {
		if err := startMetrics(cfg.MetricsAddress); err != nil {
			return fmt.Errorf("could not start metrics server: %w", err)
		}
	}

	return nil
}

// startMetrics replaces the no-op collectors with prometheus collectors
// served on address for the lifetime of the command.
func startMetrics(address string) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := metrics.NewServer(log, address, registry)
	if err := server.Start(); err != nil {
		return err
	}

	clientMetrics = metrics.NewAccessClientCollector(registry)
	validationMetrics = metrics.NewTransactionValidationCollector(registry)
	metricsServer = server
	metricsRegistry = registry
	return nil
}

func stopMetrics(*cobra.Command, []string) error {
	if metricsServer != nil {
		<-metricsServer.Done()
	}
	return nil
}

// newClient connects to the configured access node.
func newClient() (*client.Client, error) {
	encoding := entities.EventEncodingVersion_CCF_V0
	if cfg.EventEncoding == config.EventEncodingJSONCDC {
		encoding = entities.EventEncodingVersion_JSON_CDC_V0
	}

	opts := []client.Option{
		client.WithLogger(log),
		client.WithMetrics(clientMetrics),
		client.WithRequestTimeout(cfg.RequestTimeout),
		client.WithSealPollInterval(cfg.SealPollInterval),
		client.WithMaxMessageSize(cfg.MaxMessageSize),
		client.WithEventEncoding(encoding),
		client.WithCircuitBreaker(cfg.CircuitBreakerMaxFailures, cfg.CircuitBreakerRestoreTimeout),
		client.WithRateLimit(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
	}
	if metricsRegistry != nil {
		opts = append(opts, client.WithGRPCMetrics(metricsRegistry))
	}

	return client.NewClient(cfg.AccessAddress, opts...)
}

// newValidator checks transactions against the blocks known to the access node.
func newValidator(api access.API) *access.TransactionValidator {
	options := access.TransactionValidationOptions{
		Expiry:                 access.DefaultTransactionExpiry,
		MaxGasLimit:            cfg.MaxGasLimit,
		MaxTransactionByteSize: uint64(cfg.MaxMessageSize),
	}
	return access.NewTransactionValidatorWithMetrics(access.NewAPIBlocks(api), options, validationMetrics)
}
