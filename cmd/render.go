package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/colfmt/internal/config"
	"github.com/oakwood-commons/colfmt/internal/limiter"
	"github.com/oakwood-commons/colfmt/pkg/formatter"
	"github.com/oakwood-commons/colfmt/pkg/loader"
	"github.com/oakwood-commons/colfmt/pkg/logger"
	"github.com/oakwood-commons/colfmt/pkg/settings"
)

// isTerminal is swapped in tests.
var isTerminal = term.IsTerminal

// errShowHelp is returned by readDocuments when stdin is a terminal and no file was given.
var errShowHelp = errors.New("no input provided")

func runRender(cmd *cobra.Command, args []string) error {
	lim := limiter.Config{Limit: limitRows, Offset: offsetRows, Tail: tailRows}
	if err := lim.Validate(); err != nil {
		return fmt.Errorf("row limiting: %w", err)
	}

	ctx := cmd.Context()
	lgr := *logger.FromContext(ctx)
	run, ok := settings.FromContext(ctx)
	if !ok {
		run = settings.NewCliParams()
	}

	file, err := config.Load(config.ResolvePath(configFile))
	if err != nil {
		return err
	}
	if err := resolveRun(cmd, run, file, args); err != nil {
		return err
	}

	docs, err := readDocuments(cmd, run, lgr)
	if errors.Is(err, errShowHelp) {
		return cmd.Help()
	}
	if err != nil {
		return err
	}
	lgr.V(1).Info("loaded input", logger.InputKey, run.InputPath, "format", run.InputFormat, "tables", len(docs))

	out, err := renderDocuments(cmd, docs, file, run, lim, lgr)
	if err != nil {
		return err
	}
	if out == "" {
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// resolveRun fills the per-invocation settings from the flags and the config file.
func resolveRun(cmd *cobra.Command, run *settings.Run, file config.File, args []string) error {
	if len(args) > 0 {
		run.InputPath = args[0]
	}

	run.InputFormat = file.Input.Format
	if inputFormat != "" {
		run.InputFormat = inputFormat
	}
	if _, err := loader.ParseFormat(run.InputFormat); err != nil {
		return err
	}

	mode, err := settings.ParseColorMode(file.Render.Color)
	if err != nil {
		return fmt.Errorf("config render.color: %w", err)
	}
	if cmd.Flags().Changed("color") {
		mode = settings.ColorMode(colorFlag)
	}
	if noColor {
		mode = settings.ColorNever
	}
	run.Color = mode
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		run.IsTerminal = isTerminal(int(f.Fd()))
	}
	return nil
}

// readDocuments loads the tables from the input file or standard input.
func readDocuments(cmd *cobra.Command, run *settings.Run, lgr logr.Logger) ([]*loader.Document, error) {
	format, err := loader.ParseFormat(run.InputFormat)
	if err != nil {
		return nil, err
	}

	if !run.ReadsStdin() {
		if format == loader.FormatAuto {
			return loader.LoadDocumentFile(lgr, run.InputPath)
		}
		data, err := os.ReadFile(run.InputPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return loader.LoadDocuments(string(data), format)
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && run.InputPath == "" && isTerminal(int(f.Fd())) {
		return nil, errShowHelp
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return loader.LoadDocuments(string(data), format)
}

func renderDocuments(cmd *cobra.Command, docs []*loader.Document, file config.File, run *settings.Run, lim limiter.Config, lgr logr.Logger) (string, error) {
	extra := make([]loader.Highlight, 0, len(highlights))
	for _, arg := range highlights {
		h, err := parseHighlight(arg)
		if err != nil {
			return "", err
		}
		extra = append(extra, h)
	}
	overrides := flagOptions(cmd)

	tables := make([]string, 0, len(docs))
	for i, doc := range docs {
		table, err := renderDocument(doc, file.Render, overrides, extra, run.UseColor(), lim, lgr)
		if err != nil {
			if len(docs) > 1 {
				return "", fmt.Errorf("table %d: %w", i+1, err)
			}
			return "", err
		}
		tables = append(tables, table)
	}
	return strings.Join(tables, strings.Repeat("\n", file.Render.Gap()+1)), nil
}

// renderDocument formats one table. Render options are layered as config
// file < document < flags; highlights and ignored sequences accumulate in
// the same order so later highlights of a word win.
func renderDocument(doc *loader.Document, render config.Render, overrides loader.Options, extra []loader.Highlight, useColor bool, lim limiter.Config, lgr logr.Logger) (string, error) {
	base, err := render.FormatterOptions()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	base.Logger = lgr

	d := *doc
	if d.Columns, err = resolveColumns(doc.Columns); err != nil {
		return "", err
	}
	if len(d.Columns) == 0 {
		return "", fmt.Errorf("%w: declare columns in the document or pass --widths", loader.ErrNoColumns)
	}
	d.Options = mergeOptions(doc.Options, overrides)
	d.Ignore = concat(render.Ignore, doc.Ignore, ignoreSeqs)
	d.Highlights = nil
	if useColor {
		d.Highlights = concat(render.Highlights, doc.Highlights, extra)
	}

	cfg, err := d.Config(base)
	if err != nil {
		return "", err
	}
	rows, err := d.TableRows()
	if err != nil {
		return "", err
	}
	if lim.IsActive() {
		rows = limiter.ApplyFunc(lim, rows, func(r formatter.Row) bool { return !r.IsSeparator() })
	}

	table, err := formatter.New(cfg).Format(rows)
	if err != nil {
		return "", err
	}
	if d.Title == "" {
		return table, nil
	}
	return renderTitle(d.Title, cfg.TotalWidth(), useColor) + "\n" + table, nil
}

// renderTitle centres title over a table of the given width.
func renderTitle(title string, width int, useColor bool) string {
	if useColor {
		title = lipgloss.NewStyle().Bold(true).Underline(true).Render(title)
	}
	if lipgloss.Width(title) >= width {
		return title
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(title)
}

func concat[T any](parts ...[]T) []T {
	var out []T
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
