package cmd

import (
	"fmt"
	"os"

	"objectstore/core/config"
	"objectstore/core/logger"
	"objectstore/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagEndpoint  string
	flagAccessKey string
	flagSecretKey string
	flagSecure    bool
	flagRegion    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "objectstore",
	Short: "Object Storage CRUD Client",
	Long: `objectstore is a command line client and HTTP gateway for MinIO and
other S3-compatible object storage services. It supports bucket and object
CRUD operations, presigned URLs, and connectivity checks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "storage endpoint (host:port)")
	RootCmd.PersistentFlags().StringVar(&flagAccessKey, "access-key", "", "access key ID")
	RootCmd.PersistentFlags().StringVar(&flagSecretKey, "secret-key", "", "secret access key")
	RootCmd.PersistentFlags().BoolVar(&flagSecure, "secure", false, "use SSL/TLS")
	RootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "bucket region")
}

// connectOptions turns the connection flags the user actually set into
// storage options, so unset flags fall back to environment variables and
// built-in defaults.
func connectOptions(cmd *cobra.Command) []storage.Option {
	var opts []storage.Option
	if cmd.Flags().Changed("endpoint") {
		opts = append(opts, storage.WithEndpoint(flagEndpoint))
	}
	if cmd.Flags().Changed("access-key") {
		opts = append(opts, func(c *storage.Config) { c.AccessKey = flagAccessKey })
	}
	if cmd.Flags().Changed("secret-key") {
		opts = append(opts, func(c *storage.Config) { c.SecretKey = flagSecretKey })
	}
	if cmd.Flags().Changed("secure") {
		opts = append(opts, storage.WithSecure(flagSecure))
	}
	if cmd.Flags().Changed("region") {
		opts = append(opts, storage.WithRegion(flagRegion))
	}
	return opts
}

// newStorageClient builds the storage client for a CLI command: .env and
// log settings come from the application config, connection settings from
// flags > environment > defaults.
func newStorageClient(cmd *cobra.Command) (*storage.Client, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(storage.Resolve(connectOptions(cmd)...), logg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, logg, nil
}
