package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/colfmt/internal/config"
	"github.com/oakwood-commons/colfmt/pkg/logger"
	"github.com/oakwood-commons/colfmt/pkg/settings"
)

var (
	debug       bool
	configFile  string
	inputFormat string

	widthsFlag    widthsValue
	alignFlag     alignmentsValue
	colorFlag     = colorModeValue(settings.ColorAuto)
	border        bool
	borderPadding bool
	paddingChar   string
	noWrap        bool
	lineFeed      bool
	measure       string
	noColor       bool
	ignoreSeqs    []string
	highlights    []string

	limitRows  int
	offsetRows int
	tailRows   int
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: shortHelp(),
	Long: `Render rows of text into fixed-width columns.

The input is a table document (YAML, JSON, NDJSON, TOML) or CSV rows. A
document declares its columns, options, highlights and rows:

  columns:
    - {width: 20, align: left}
    - {width: 30, align: left-and-right}
  options: {border: true}
  rows:
    - [Item, [Price, "12,99"]]
    - double
    - [Total, {left: EUR, right: "12,99"}]

Flags override the options of the document, which override the config file.`,
	Example:       "\n  colfmt receipt.yaml\n  colfmt receipt.yaml --border --border-padding\n  colfmt rows.csv --widths 10,30,10 --align left,left,right\n  cat table.json | colfmt --highlight OK=green@2 --color always\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

		run := settings.NewCliParams()
		run.MinLogLevel = level
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logger.WithLogger(ctx, lgr)
		cmd.SetContext(settings.IntoContext(ctx, run))
	},
	RunE: runRender,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + settings.CliBinaryName + " version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return err
	},
}

//nolint:gochecknoinits // cobra wiring
func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/colfmt/config.yaml)")

	f := rootCmd.Flags()
	f.StringVarP(&inputFormat, "input-format", "f", "", "input format: auto|json|ndjson|yaml|toml|csv")
	f.VarP(&widthsFlag, "widths", "w", "comma-separated column widths, e.g. 10,30,10")
	f.VarP(&alignFlag, "align", "a", "comma-separated alignments: left|right|center|left-and-right")
	f.BoolVar(&border, "border", false, "draw a box border around and between columns")
	f.BoolVar(&borderPadding, "border-padding", false, "pad both sides of every column with the padding character")
	f.StringVar(&paddingChar, "padding-char", "", "character that fills unused column space (default space)")
	f.BoolVar(&noWrap, "no-wrap", false, "truncate overlong cells with an ellipsis instead of wrapping")
	f.BoolVar(&lineFeed, "line-feed", false, "start the output with an empty line")
	f.StringVar(&measure, "measure", "", "display length metric: runes|cells")
	f.StringArrayVar(&ignoreSeqs, "ignore", nil, "sequence that takes no width (repeatable)")
	f.StringArrayVar(&highlights, "highlight", nil, "colour a word: word=color[/background][@column] (repeatable)")
	f.Var(&colorFlag, "color", "colour highlights: auto|always|never")
	f.BoolVar(&noColor, "no-color", false, "disable colour output (same as --color never)")
	f.IntVar(&limitRows, "limit", 0, "show only the first N data rows (0 = unlimited)")
	f.IntVar(&offsetRows, "offset", 0, "skip the first N data rows")
	f.IntVar(&tailRows, "tail", 0, "show only the last N data rows")

	_ = rootCmd.RegisterFlagCompletionFunc("input-format", cobra.FixedCompletions([]string{"auto", "json", "ndjson", "yaml", "toml", "csv"}, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions([]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("measure", cobra.FixedCompletions([]string{"runes", "cells"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func shortHelp() string {
	name := settings.CliBinaryName
	if cfg, err := config.Embedded(); err == nil && cfg.App.About.Name != "" {
		name = cfg.App.About.Name
	}
	return name + " - fixed-width column formatter"
}

func Execute() error {
	return rootCmd.Execute()
}
