// Package main is the ideaworks CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/ideaworks/config.yaml"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	envFile    string
	debug      bool
}

// loadConfig loads config from path. When path is the default, config.yaml in the
// current directory wins if it exists, so running from the project dir picks up the
// project's config. A missing file yields the defaults. Returns the config and the
// path that was actually used.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				path = fallback
			}
		}
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// setup loads the .env file, the config and the logger for a subcommand.
func (g *globalFlags) setup() (*config.Config, string, *zap.Logger, error) {
	if err := godotenv.Load(g.envFile); err != nil && !os.IsNotExist(err) {
		return nil, "", nil, fmt.Errorf("load %s: %w", g.envFile, err)
	}
	cfg, resolved, err := loadConfig(g.configPath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug || g.debug)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, resolved, logger, nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "ideaworks",
		Short: "Find collaborators, papers and project ideas",
		Long: `ideaworks turns a handful of idea descriptions into ranked collaborator
suggestions drawn from code hosting, Q&A, model hub, paper index and dataset hub
sources. It also searches papers on Crossref and arXiv and, when an LLM endpoint is
configured, scores and generates ideas.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", defaultConfigPath, "config file path")
	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "dotenv file loaded before the config")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(g),
		newSuggestCmd(g),
		newPapersCmd(g),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ideaworks version %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
