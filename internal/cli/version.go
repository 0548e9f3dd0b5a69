package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/version"
)

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			if format == "" || format == config.FormatText {
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return nil
			}
			if format != config.FormatJSON && format != config.FormatYAML {
				return fmt.Errorf("invalid format: %q (valid: %s, %s, %s)", format, config.FormatText, config.FormatJSON, config.FormatYAML)
			}
			return render(cmd.OutOrStdout(), config.OutputConfig{Format: format}, info, nil)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (text, json, yaml)")
	return cmd
}
