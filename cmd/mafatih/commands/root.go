// Package commands implements the mafatih operator CLI.
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mafatih/internal/app"
	"mafatih/internal/common/config"
	"mafatih/internal/common/logger"
)

// env carries the state shared by every subcommand of one invocation.
type env struct {
	cfgFile string
	verbose bool

	app *app.App
	zap *zap.Logger
}

// services loads configuration and wires the application on first use.
// Commands that only run local analysis never call it.
func (e *env) services(cmd *cobra.Command) (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}

	var (
		cfg *config.Config
		err error
	)
	if e.cfgFile != "" {
		cfg, err = config.LoadFromFile(e.cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := "warn"
	if e.verbose {
		level = "debug"
	}
	e.zap = logger.New(level, "console")

	a, err := app.Build(cmd.Context(), cfg, e.zap, app.Options{Retries: 1})
	if err != nil {
		return nil, fmt.Errorf("wire services: %w", err)
	}
	e.app = a
	return a, nil
}

func (e *env) close() {
	if e.app != nil {
		e.app.Close()
		e.app = nil
	}
	if e.zap != nil {
		_ = e.zap.Sync()
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "mafatih",
		Short: "Mafatih - Islamic Q&A, dream interpretation and verse recommendation",
		Long: `Mafatih answers religious questions, interprets dreams and recommends
Quranic verses using curated knowledge, an LLM gateway and local search. It
also browses the Islam House content catalog.`,
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
	}

	root.PersistentFlags().StringVarP(&e.cfgFile, "config", "c", "", "config file path")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newAskCmd(e),
		newDreamCmd(e),
		newVerseCmd(e),
		newAnalyzeCmd(),
		newCatalogCmd(e),
		newRemindersCmd(),
		newRegistryCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
