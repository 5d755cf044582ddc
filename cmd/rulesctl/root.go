package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rules.evalgo.org/internal/config"
	"rules.evalgo.org/internal/obslog"
)

// cfgFile holds the path to the configuration file specified via
// --config. An empty value falls back to viper's default search path.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rulesctl",
	Short: "compile and run declarative product-data rule sets",
	Long: `rulesctl compiles authored rule documents (YAML or JSON) into an
executable rule set and runs them against tabular product data, reporting
validation errors, suggested field values, and value transformations.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.rulesctl.yaml)")
	rootCmd.PersistentFlags().Int("workers", 0, "worker pool size (default: 4, or RULES_WORKERS)")
	rootCmd.PersistentFlags().Int("deadline", 0, "soft execution deadline in milliseconds (default: 3000, or RULES_SOFT_DEADLINE_MS)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error (default: info)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text|json (default: text)")

	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("deadline", rootCmd.PersistentFlags().Lookup("deadline"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(compileCmd, validateCmd, runCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rulesctl")
	}

	viper.SetEnvPrefix("RULES")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// resolvedConfig layers viper (flags, env, config file) on top of
// config.DefaultEngineConfig, which already reads the RULES_* environment
// variables directly; viper's bound flags take precedence when set.
func resolvedConfig() config.EngineConfig {
	cfg := config.DefaultEngineConfig()
	if v := viper.GetInt("workers"); v > 0 {
		cfg.Workers = v
	}
	if v := viper.GetInt("deadline"); v > 0 {
		cfg.SoftDeadlineMs = v
	}
	if v := viper.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := viper.GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}
	return cfg
}

func buildLogger(cfg config.EngineConfig) *logrus.Logger {
	return obslog.New(obslog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
}
