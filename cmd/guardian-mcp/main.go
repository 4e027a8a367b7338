// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the guardian-mcp server and CLI.
// The serve subcommand speaks MCP on stdio; the other subcommands run the
// same tools from a shell.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/guardian-mcp/internal/gateway"
	"github.com/pdiddy/guardian-mcp/internal/httputil"
	"github.com/pdiddy/guardian-mcp/internal/secrets"
	"github.com/pdiddy/guardian-mcp/internal/tools"
	"github.com/pdiddy/guardian-mcp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// serverName is reported to MCP clients.
const serverName = "guardian"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// logger writes to stderr; stdout carries protocol traffic.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var rootCmd = &cobra.Command{
	Use:   "guardian-mcp",
	Short: "MCP server for the Guardian content API",
	Long: `guardian-mcp exposes the Guardian open content API as Model Context Protocol
tools: search, article retrieval, tag and section browsing, and analysis tools
such as related-article discovery, coverage timelines, topic trend comparison,
editorial ranking of a day's stories, Long Read recommendations and author
profiles.

Run "guardian-mcp serve" from an MCP client. The API key is read from
GUARDIAN_API_KEY, the config file, or .secrets/guardian-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(viper.GetString("log_level"))
		slog.SetDefault(logger)

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", "keys", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./guardian-mcp.yaml or ~/.config/guardian-mcp/guardian-mcp.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("guardian-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "guardian-mcp"))
		}
	}

	viper.SetEnvPrefix("GUARDIAN_MCP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("gateway.api_key", "GUARDIAN_API_KEY", "GUARDIAN_MCP_GATEWAY_API_KEY")

	viper.SetDefault("gateway.base_url", gateway.DefaultBaseURL)
	viper.SetDefault("gateway.timeout", "10s")
	viper.SetDefault("analysis.pacing_delay", httputil.DefaultPacingDelay.String())
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env and file configuration.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Gateway.APIKey = loadedSecrets.Or(secrets.GuardianAPIKey, cfg.Gateway.APIKey)
	if cfg.Gateway.UserAgent == "" {
		cfg.Gateway.UserAgent = "guardian-mcp/" + version
	}
	return cfg, nil
}

// newRegistry wires the content API client into the tool registry.
func newRegistry() (*tools.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := gateway.New(cfg.Gateway)
	if err != nil {
		return nil, err
	}
	return tools.New(tools.Deps{
		Gateway: client,
		Pacer:   httputil.NewPacer(cfg.Analysis.PacingDelay),
		Logger:  logger,
	}), nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
