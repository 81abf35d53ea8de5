package dataset

import (
	"math"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/scatterplot/pkg/errors"
)

// Default column names of the College Scorecard export.
const (
	DefaultNameColumn     = "Name"
	DefaultEarningsColumn = "Median Earnings 8 years After Entry"
	DefaultDebtColumn     = "Median Debt on Graduation"
)

// Columns names the CSV headers a Record is read from.
type Columns struct {
	Name     string `toml:"name"`
	Earnings string `toml:"earnings"`
	Debt     string `toml:"debt"`
}

// DefaultColumns returns the College Scorecard header names.
func DefaultColumns() Columns {
	return Columns{
		Name:     DefaultNameColumn,
		Earnings: DefaultEarningsColumn,
		Debt:     DefaultDebtColumn,
	}
}

// Validate checks that every column name is usable.
func (c Columns) Validate() error {
	for _, name := range []string{c.Name, c.Earnings, c.Debt} {
		if err := perrors.ValidateColumnName(name); err != nil {
			return err
		}
	}
	return nil
}

// Record is one college. The derived numeric fields are computed once by
// [Parse] and cannot be changed afterwards.
type Record struct {
	index    int
	name     string
	earnings float64
	debt     float64
	raw      Row
}

// Index returns the record's position in the source file (0-based, header excluded).
func (r *Record) Index() int { return r.index }

// Name returns the college name.
func (r *Record) Name() string { return r.name }

// Earnings returns median earnings 8 years after entry. It is NaN when the
// raw value could not be coerced under [PolicyHide] or [PolicyDrop].
func (r *Record) Earnings() float64 { return r.earnings }

// Debt returns median debt at graduation, with the same NaN rule as [Record.Earnings].
func (r *Record) Debt() float64 { return r.debt }

// Valid reports whether both derived fields are finite numbers.
func (r *Record) Valid() bool { return isFinite(r.earnings) && isFinite(r.debt) }

// Field returns the original, uncoerced value of column.
func (r *Record) Field(column string) (string, bool) {
	v, ok := r.raw[column]
	return v, ok
}

// Fields returns a copy of all original values.
func (r *Record) Fields() Row {
	out := make(Row, len(r.raw))
	for k, v := range r.raw {
		out[k] = v
	}
	return out
}

// Coerce converts a raw CSV value to a number. Surrounding whitespace is
// ignored; empty and non-numeric strings yield NaN.
func Coerce(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Parse converts every row of t into a Record, in order.
//
// It returns an INVALID_INPUT error when t has a header that lacks one of
// the configured columns. A table without a header (an empty file) yields no
// records and no error.
func Parse(t *Table, cols Columns, policy InvalidPolicy) ([]*Record, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if len(t.Header) > 0 {
		for _, name := range []string{cols.Name, cols.Earnings, cols.Debt} {
			if !t.HasColumn(name) {
				return nil, perrors.New(perrors.ErrCodeInvalidInput, "missing column %q", name)
			}
		}
	}
	return ParseRows(t.Rows, cols, policy), nil
}

// ParseRows converts rows into Records without header checks. A row that
// lacks a column is treated as holding an empty string for it. The output has
// exactly one Record per row, in input order.
func ParseRows(rows []Row, cols Columns, policy InvalidPolicy) []*Record {
	records := make([]*Record, len(rows))
	for i, row := range rows {
		records[i] = &Record{
			index:    i,
			name:     row[cols.Name],
			earnings: policy.apply(Coerce(row[cols.Earnings])),
			debt:     policy.apply(Coerce(row[cols.Debt])),
			raw:      row,
		}
	}
	return records
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
