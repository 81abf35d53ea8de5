package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterplot/pkg/config"
)

// chartFlags are the chart settings every data command accepts. They
// override config file values only when set on the command line.
type chartFlags struct {
	width   float64
	height  float64
	title   string
	invalid string // hide, zero or drop
	noCache bool
	refresh bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().Float64Var(&f.width, "width", defaults.Frame.Width, "frame width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", defaults.Frame.Height, "frame height in pixels")
	cmd.Flags().StringVar(&f.title, "title", defaults.Labels.Title, "chart title")
	cmd.Flags().StringVar(&f.invalid, "invalid", defaults.Data.Invalid, "records with non-numeric values: hide, zero, drop")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-download remote sources and re-render")

	_ = cmd.RegisterFlagCompletionFunc("invalid",
		cobra.FixedCompletions([]string{"hide", "zero", "drop"}, cobra.ShellCompDirectiveNoFileComp))
}

// apply copies the flags that were set onto cfg and validates the result.
func (f *chartFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Frame.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Frame.Height = f.height
	}
	if flags.Changed("title") {
		cfg.Labels.Title = f.title
	}
	if flags.Changed("invalid") {
		cfg.Data.Invalid = f.invalid
	}
	return cfg.Validate()
}

// loadChartConfig loads the config file and applies f on top.
func (c *CLI) loadChartConfig(cmd *cobra.Command, f *chartFlags) (config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return cfg, err
	}
	if err := f.apply(cmd, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
