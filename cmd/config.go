package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colfmt/internal/config"
	"github.com/oakwood-commons/colfmt/pkg/formatter"
)

var (
	configOutput   string
	configDefaults bool
)

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  "Print the embedded defaults merged with the user config file.",
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

// configColorsCmd lists the names accepted by highlights.
var configColorsCmd = &cobra.Command{
	Use:     "colors",
	Aliases: []string{"colours"},
	Short:   "List highlight colour names",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for _, name := range formatter.ColorNames() {
			code, _ := formatter.ColorByName(name)
			bg := "no"
			if code.BG != "" {
				bg = "yes"
			}
			if _, err := fmt.Fprintf(out, "%-14s background: %s\n", name, bg); err != nil {
				return err
			}
		}
		return nil
	},
}

//nolint:gochecknoinits // cobra wiring
func init() {
	configCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|json")
	configCmd.Flags().BoolVar(&configDefaults, "defaults", false, "print the embedded default file as shipped")
	configCmd.AddCommand(configColorsCmd)
}

func runConfigView(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if configDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.Load(config.ResolvePath(configFile))
	if err != nil {
		return err
	}
	switch strings.ToLower(configOutput) {
	case "yaml", "yml", "":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	return fmt.Errorf("unsupported config output %q (use yaml|json)", configOutput)
}
