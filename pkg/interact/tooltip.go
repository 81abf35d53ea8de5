package interact

import (
	"strconv"
	"strings"

	"github.com/matzehuels/scatterplot/pkg/dataset"
)

// NoOwner is the owner index of a tooltip no mark is hovering.
const NoOwner = -1

// Tooltip is the shared hover overlay.
type Tooltip struct {
	Owner    int     // Index of the owning mark, or NoOwner
	Opacity  float64 // 0 hidden; Config.TooltipOpacity when shown
	Position Point   // Pointer position plus Config.Offset
	Content  Content
}

// Visible reports whether a mark owns the tooltip.
func (t Tooltip) Visible() bool { return t.Owner != NoOwner }

// Content is the text shown for a record.
type Content struct {
	Name     string
	Earnings float64
	Debt     float64
}

// ContentFor extracts tooltip content from r.
func ContentFor(r *dataset.Record) Content {
	return Content{Name: r.Name(), Earnings: r.Earnings(), Debt: r.Debt()}
}

// Lines returns the tooltip rows: name, earnings and debt.
func (c Content) Lines() []string {
	return []string{
		c.Name,
		"Median Earnings: $" + FormatAmount(c.Earnings),
		"Median Debt: $" + FormatAmount(c.Debt),
	}
}

// Text returns the rows joined by newlines.
func (c Content) Text() string { return strings.Join(c.Lines(), "\n") }

// FormatAmount renders a dollar amount the way it is stored, without
// grouping separators (40000, 1234.5).
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
