// Package cli implements recipectl, the operator command line for searching
// recipes and publishing catalog snapshots.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/recipe-picker/backend/config"
	"github.com/pageza/recipe-picker/backend/internal/logger"
)

const name = "recipectl"

// Execute runs recipectl with the process arguments.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree around a private viper instance.
// Settings come from flags, RECIPECTL_* environment variables and an
// optional YAML config file, in that order of precedence.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           name,
		Short:         "recipectl - search recipes and publish catalog snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			logger.SetupWriter(cmd.ErrOrStderr(), v.GetString("log-level"), "text")
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.recipectl.yaml)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("db-driver", "postgres", "database driver (postgres, sqlite)")
	flags.String("db-host", "localhost", "database host")
	flags.String("db-port", "5432", "database port")
	flags.String("db-user", "postgres", "database user")
	flags.String("db-password", "", "database password")
	flags.String("db-name", "recipepicker", "database name")
	flags.String("db-ssl-mode", "disable", "database SSL mode")
	flags.String("sqlite-path", "recipepicker.db", "SQLite database file")
	flags.String("s3-bucket", "", "bucket holding the catalog snapshot (overrides S3_BUCKET_NAME)")
	flags.String("s3-key", "", "object key of the catalog snapshot (overrides S3_CATALOG_KEY)")
	_ = v.BindPFlags(flags)

	root.AddCommand(newSearchCommand(v), newExportCommand(v))
	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(name)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName("." + name)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// databaseConfig maps the CLI settings onto the service configuration.
func databaseConfig(v *viper.Viper) *config.Config {
	return &config.Config{
		DBDriver:   v.GetString("db-driver"),
		DBHost:     v.GetString("db-host"),
		DBPort:     v.GetString("db-port"),
		DBUser:     v.GetString("db-user"),
		DBPassword: v.GetString("db-password"),
		DBName:     v.GetString("db-name"),
		DBSSLMode:  v.GetString("db-ssl-mode"),
		SQLitePath: v.GetString("sqlite-path"),
	}
}

func s3Config(ctx context.Context, v *viper.Viper) (*config.S3Config, error) {
	cfg, err := config.NewS3Config(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	if bucket := v.GetString("s3-bucket"); bucket != "" {
		cfg.BucketName = bucket
	}
	if key := v.GetString("s3-key"); key != "" {
		cfg.CatalogKey = key
	}
	return cfg, nil
}
