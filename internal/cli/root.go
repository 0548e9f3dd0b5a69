// Package cli provides the command-line interface for tonal.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/version"
)

// app is the state shared by all commands of one invocation.
type app struct {
	configPath string
	verbose    bool
	quiet      bool

	cfg    *config.Config
	logger hclog.Logger
}

// NewRootCmd builds the tonal command tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		logger: hclog.NewNullLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "tonal",
		Short: "Derive perceptual colour themes from images and colours",
		Long: `tonal builds Material-style colour themes in the HCT colour space.

A theme is derived from a single source colour, given directly or extracted
from an image by quantizing its pixels and scoring the results. Each theme
carries light and dark schemes of named colour roles, the tonal palettes
behind them, and any custom colours harmonized toward the source.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (applied after the user and project config)")

	rootCmd.AddCommand(
		newThemeCmd(a),
		newSourceCmd(a),
		newQuantizeCmd(a),
		newPaletteCmd(a),
		newInspectCmd(a),
		newHarmonizeCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newTemplatesCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// setup creates the logger and loads the layered configuration.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := hclog.Warn
	switch {
	case a.verbose:
		level = hclog.Debug
	case a.quiet:
		level = hclog.Error
	}

	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "tonal",
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})

	cfg, applied, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		a.logger.Debug("no config files found, using defaults")
	}
	for _, path := range applied {
		a.logger.Debug("applied config", "path", path)
	}

	a.cfg = cfg
	return nil
}

// validate re-checks the configuration after flag overrides.
func (a *app) validate() error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
