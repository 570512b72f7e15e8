// Command server runs the AgriMitra marketplace API and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"agrimitra/config"
	"agrimitra/database"
	"agrimitra/pkg/logger"
)

var (
	// set by persistent flags
	configFile string
	envFile    string

	v   *viper.Viper
	cfg config.AppConfig
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "agrimitra",
	Short:             "AgriMitra marketplace backend",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	// serve is the default action
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "optional yaml/toml/json config file")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment")
	pf.String("db", "", "sqlite database path (DB_PATH)")
	pf.String("log-level", "", "log level (LOG_LEVEL)")
	pf.String("log-format", "", "plain or json (LOG_FORMAT)")

	rootCmd.AddCommand(serveCmd, seedCmd, pricesCmd)
}

// loadConfig builds the viper instance, binds the flags that were given and
// resolves cfg and log for every subcommand.
func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	if v, err = config.New(envFile); err != nil {
		return err
	}
	if configFile != "" {
		if err := config.ReadFile(v, configFile); err != nil {
			return err
		}
	}
	for key, flag := range map[string]string{
		config.KeyDBPath:    "db",
		config.KeyLogLevel:  "log-level",
		config.KeyLogFormat: "log-format",
		config.KeyPort:      "port",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	if cfg, err = config.Load(v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if log, err = logger.New(cfg.LogFormat, cfg.LogLevel, os.Stderr); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}

func openDB() (*gorm.DB, error) {
	db, err := database.OpenSQLite(cfg.DBPath, log.With().Str("module", "db").Logger())
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", cfg.DBPath).Msg("database ready")
	return db, nil
}
