package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterplot/pkg/config"
	"github.com/matzehuels/scatterplot/pkg/io"
	"github.com/matzehuels/scatterplot/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chartFlags
	output  string // output file (single format) or base path (multiple)
	formats string // comma-separated output formats
	tooltip bool    // embed hover emphasis and tooltip
	scale   float64 // png/pdf size multiplier
}

// renderCommand creates the render command for generating chart artifacts.
//
// Default settings:
//   - format: svg
//   - frame: 800x600 with the reference margins
//   - invalid: hide (records stay in the data, unparseable ones are not drawn)
//   - tooltip: true
//   - scale: 1 (png, pdf)
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{tooltip: true, scale: config.Default().Export.Scale}

	cmd := &cobra.Command{
		Use:   "render <csv|url>",
		Short: "Render a dataset as a scatter plot",
		Long: `Render reads a CSV file or http(s) URL and writes the scatter plot in each
requested format. With one format, --output names the file. With several,
--output is a base path and each format gets its own extension.`,
		Example: `  scatterplot render colleges.csv
  scatterplot render colleges.csv -f svg,html,json -o out/chart
  scatterplot render colleges.csv -f png --scale 2
  scatterplot render https://example.com/colleges.csv --invalid drop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadChartConfig(cmd, &opts.chartFlags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tooltip") {
				cfg.Interaction.Tooltip = opts.tooltip
			}
			if cmd.Flags().Changed("scale") {
				cfg.Export.Scale = opts.scale
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			formats, err := pipeline.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), html, json, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.tooltip, "tooltip", opts.tooltip, "embed hover emphasis and tooltip (svg, html)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "size multiplier for png and pdf output")
	opts.chartFlags.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(formatNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, formats []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Source:  input,
		Formats: formats,
		Config:  &cfg,
		NoCache: opts.noCache,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if result.Stats.Invalid > 0 {
		printWarning("%d of %d records have invalid values (%s)", result.Stats.Invalid, result.Stats.Rows, cfg.Policy())
	}

	paths := io.OutputPaths(opts.output, io.Stem(input), formatsOrDefault(formats))
	for _, format := range formatsOrDefault(formats) {
		path := paths[format]
		data, ok := result.Artifacts[format]
		if !ok {
			return fmt.Errorf("no %s artifact rendered", format)
		}
		if err := io.WriteFile(path, data); err != nil {
			return err
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(data))
		printFile(path)
	}

	printStats(result.Stats.Rows, len(result.Chart.Visible()), result.CacheInfo.RenderHit)
	prog.done(fmt.Sprintf("Rendered %d marks", len(result.Chart.Marks)))
	return nil
}

// formatNames lists the output formats in a stable order.
func formatNames() []string {
	return []string{
		pipeline.FormatSVG, pipeline.FormatHTML, pipeline.FormatJSON,
		pipeline.FormatPNG, pipeline.FormatPDF,
	}
}

// formatsOrDefault returns formats, or the default format when empty.
func formatsOrDefault(formats []string) []string {
	if len(formats) == 0 {
		return []string{pipeline.DefaultFormat}
	}
	return formats
}
