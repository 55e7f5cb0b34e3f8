package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/getmockd/factories/pkg/cli/internal/output"
	"github.com/getmockd/factories/pkg/config"
)

func newConfigCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration and where each value came from
(default, file, env or flag).`,
		Example: `  factories config
  factories config --output yaml
  FACTORIES_DEBUG=1 factories config --resource-directory app/resources/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			switch format {
			case "table":
				return output.Table(cmd.OutOrStdout(), []string{"Field", "Value", "Source"}, configRows(cfg))
			case "json":
				return output.JSON(cmd.OutOrStdout(), cfg)
			case "yaml":
				data, err := config.ToYAML(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

func configRows(cfg *config.Config) [][]string {
	fields := []struct {
		name  string
		value string
	}{
		{"requestDirectory", cfg.RequestDirectory},
		{"requestFactoriesDirectory", cfg.RequestFactoriesDirectory},
		{"resourceDirectory", cfg.ResourceDirectory},
		{"resourceFactoriesDirectory", cfg.ResourceFactoriesDirectory},
		{"debug", strconv.FormatBool(cfg.Debug)},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
	}
	rows := make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{f.name, f.value, cfg.Source(f.name)}
	}
	return rows
}
