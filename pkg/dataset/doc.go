// Package dataset loads college records from CSV and coerces their numeric
// fields.
//
// # Overview
//
// A [Table] is the raw, header-keyed view of a CSV file. [Parse] turns each
// [Row] into a [Record] with two derived numeric fields, earnings and debt,
// computed exactly once. Records are immutable: their fields are only
// reachable through accessor methods.
//
// # Coercion
//
// Raw values are trimmed and parsed as float64. Empty or non-numeric strings
// become NaN. What happens to such values is decided by an [InvalidPolicy]:
//
//   - [PolicyHide] keeps the NaN; the record stays in the dataset but is
//     reported invalid so later stages can skip drawing it.
//   - [PolicyZero] coerces unparseable values to 0 at parse time.
//   - [PolicyDrop] keeps the NaN; callers remove invalid records with [Valid].
//
// Parsing never drops or reorders rows; the output length always equals the
// input length.
//
//	t, err := dataset.ReadCSV(f)
//	records, err := dataset.Parse(t, dataset.DefaultColumns(), dataset.PolicyHide)
package dataset
