package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/config"
	"github.com/matzehuels/scatterplot/pkg/pipeline"
	"github.com/matzehuels/scatterplot/pkg/scale"
	"github.com/matzehuels/scatterplot/pkg/source"
)

// statsCommand creates the stats command, which summarizes a dataset and
// the chart it lays out to without rendering anything.
func (c *CLI) statsCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "stats <csv|url>",
		Short: "Summarize a dataset and its chart scales",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadChartConfig(cmd, &flags)
			if err != nil {
				return err
			}
			result, err := c.prepare(cmd.Context(), args[0], cfg, &flags)
			if err != nil {
				return err
			}
			printSummary(os.Stdout, result, cfg)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// prepare loads and lays out input without rendering. Outside verbose mode
// only warnings are logged so they don't interleave with command output.
func (c *CLI) prepare(ctx context.Context, input string, cfg config.Config, flags *chartFlags) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	logger := loggerFromContext(ctx).With()
	if logger.GetLevel() > LogDebug {
		logger.SetLevel(log.WarnLevel)
		if source.IsRemote(input) {
			sp := newSpinner(ctx, os.Stderr, "Downloading "+input)
			sp.Start()
			defer sp.Stop()
		}
	}

	return runner.Prepare(ctx, pipeline.Options{
		Source:  input,
		Config:  &cfg,
		NoCache: flags.noCache,
		Refresh: flags.refresh,
		Logger:  logger,
	})
}

// printSummary writes the dataset and scale summary as a table.
func printSummary(w io.Writer, result *pipeline.Result, cfg config.Config) {
	c := result.Chart
	st := result.Stats

	rows := [][]string{
		{"Source", result.Source.Location},
		{"Size", humanize.Bytes(uint64(st.Bytes))},
		{"Rows", humanize.Comma(int64(st.Rows))},
		{"Valid", humanize.Comma(int64(st.Valid))},
		{"Invalid", fmt.Sprintf("%s (%s)", humanize.Comma(int64(st.Invalid)), cfg.Policy())},
		{"Drawn", humanize.Comma(int64(len(c.Visible())))},
		{"Earnings", domainString(c.X)},
		{"Debt", domainString(c.Y)},
		{"X ticks", tickString(c.X.Ticks)},
		{"Y ticks", tickString(c.Y.Ticks)},
		{"Chart ID", c.ID},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("", c.Title).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case col == 0:
				return StyleDim
			}
			return StyleValue
		})

	fmt.Fprintln(w, t.Render())
}

func domainString(a chart.Axis) string {
	d := a.Scale.Domain()
	return fmt.Sprintf("%s – %s", humanize.Commaf(d[0]), humanize.Commaf(d[1]))
}

func tickString(ticks []scale.Tick) string {
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = t.Label
	}
	return strings.Join(labels, "  ")
}
