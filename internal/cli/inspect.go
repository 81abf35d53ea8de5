package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/interact"
)

// Inspector styles
var (
	inspectPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
	inspectMarkStyle   = lipgloss.NewStyle().Foreground(colorSteel).Bold(true)
	inspectHiddenStyle = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	inspectHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command: an interactive table of
// records where moving the cursor hovers the corresponding mark.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "inspect <csv|url>",
		Short: "Browse records and preview hover states",
		Long: `Inspect shows every record in a table. Moving the cursor leaves the
previous mark and enters the new one, exactly as a pointer would in the
rendered chart, and shows the resulting mark radius and tooltip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadChartConfig(cmd, &flags)
			if err != nil {
				return err
			}
			result, err := c.prepare(cmd.Context(), args[0], cfg, &flags)
			if err != nil {
				return err
			}

			m := newInspectModel(result.Chart, cfg.InteractConfig())
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// =============================================================================
// inspectModel - Interactive record browser
// =============================================================================

// inspectModel is the bubbletea model for the inspect command.
type inspectModel struct {
	chart   *chart.Chart
	ctrl    *interact.Controller
	tbl     table.Model
	hovered int                   // mark under the cursor, or interact.NoOwner
	last    []interact.Transition // transitions fired by the last cursor move
	status  string
}

func newInspectModel(c *chart.Chart, cfg interact.Config) inspectModel {
	cols := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Name", Width: 36},
		{Title: "Earnings", Width: 12},
		{Title: "Debt", Width: 12},
		{Title: "Drawn", Width: 6},
	}
	rows := make([]table.Row, len(c.Marks))
	for i, mk := range c.Marks {
		content := interact.ContentFor(mk.Record)
		drawn := "yes"
		if !mk.Visible {
			drawn = "no"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			content.Name,
			interact.FormatAmount(content.Earnings),
			interact.FormatAmount(content.Debt),
			drawn,
		}
	}

	tbl := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	m := inspectModel{
		chart:   c,
		ctrl:    interact.NewController(c.Marks, cfg),
		tbl:     tbl,
		hovered: interact.NoOwner,
	}
	m.hover(tbl.Cursor())
	return m
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h := msg.Height - 14
		if h < 5 {
			h = 5
		}
		m.tbl.SetHeight(h)
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	if cur := m.tbl.Cursor(); cur != m.hovered {
		m.hover(cur)
	}
	return m, cmd
}

// hover moves the simulated pointer from the current mark to mark i.
func (m *inspectModel) hover(i int) {
	m.last = nil
	m.status = ""
	if m.hovered != interact.NoOwner {
		ts, err := m.ctrl.Leave(m.hovered)
		if err == nil {
			m.last = append(m.last, ts...)
		}
	}
	m.hovered = i
	if i < 0 || i >= m.ctrl.Len() {
		m.hovered = interact.NoOwner
		return
	}

	ts, err := m.ctrl.Enter(i, m.pointer(i))
	switch {
	case errors.Is(err, interact.ErrHidden):
		m.status = "not drawn: earnings or debt is not a number"
	case err != nil:
		m.status = err.Error()
	default:
		m.last = append(m.last, ts...)
	}
}

// pointer returns the frame position of mark i's center.
func (m inspectModel) pointer(i int) interact.Point {
	mk := m.chart.Marks[i]
	margin := m.chart.Frame.Margin
	return interact.Point{X: mk.X + margin.Left, Y: mk.Y + margin.Top}
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.chart.Title))
	b.WriteString("\n")
	b.WriteString(inspectHelpStyle.Render("↑/↓ hover  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.tbl.View())
	b.WriteString("\n")
	b.WriteString(inspectPanelStyle.Render(m.panel()))
	b.WriteString("\n")
	return b.String()
}

// panel describes the hovered mark and the tooltip.
func (m inspectModel) panel() string {
	if m.hovered == interact.NoOwner {
		return inspectHiddenStyle.Render("no records")
	}
	mk := m.chart.Marks[m.hovered]

	var lines []string
	lines = append(lines, fmt.Sprintf("%s  %s  r=%s",
		inspectMarkStyle.Render(mk.ID),
		StyleDim.Render(m.ctrl.State(m.hovered).String()),
		StyleValue.Render(fmt.Sprintf("%g", m.ctrl.Radius(m.hovered)))))

	if m.status != "" {
		lines = append(lines, inspectHiddenStyle.Render(m.status))
	}

	tip := m.ctrl.Tooltip()
	if tip.Visible() {
		lines = append(lines, StyleDim.Render(fmt.Sprintf("tooltip at (%g, %g), opacity %g",
			tip.Position.X, tip.Position.Y, tip.Opacity)))
		for _, l := range tip.Content.Lines() {
			lines = append(lines, "  "+StyleValue.Render(l))
		}
	} else {
		lines = append(lines, StyleDim.Render("tooltip hidden"))
	}

	for _, t := range m.last {
		lines = append(lines, StyleDim.Render(fmt.Sprintf("%s.%s %g → %g over %s",
			t.Target, t.Property, t.From, t.To, t.Duration.Round(time.Millisecond))))
	}
	return strings.Join(lines, "\n")
}
