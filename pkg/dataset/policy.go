package dataset

import (
	perrors "github.com/matzehuels/scatterplot/pkg/errors"
)

// InvalidPolicy decides how records with non-numeric values are treated.
type InvalidPolicy string

// Supported policies.
const (
	PolicyHide InvalidPolicy = "hide" // keep the record, do not draw it
	PolicyZero InvalidPolicy = "zero" // coerce unparseable values to 0
	PolicyDrop InvalidPolicy = "drop" // remove the record before binding
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = PolicyHide

// ParsePolicy converts a flag or config value into a policy. The empty
// string selects [DefaultPolicy].
func ParsePolicy(s string) (InvalidPolicy, error) {
	if s == "" {
		return DefaultPolicy, nil
	}
	p := InvalidPolicy(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate returns an INVALID_POLICY error for unknown policies.
func (p InvalidPolicy) Validate() error {
	switch p {
	case PolicyHide, PolicyZero, PolicyDrop:
		return nil
	}
	return perrors.New(perrors.ErrCodeInvalidPolicy, "invalid policy: %q (must be 'hide', 'zero', or 'drop')", string(p))
}

func (p InvalidPolicy) apply(v float64) float64 {
	if p == PolicyZero && !isFinite(v) {
		return 0
	}
	return v
}

// Valid returns the records whose derived fields are both finite, preserving
// order. The input slice is not modified.
func Valid(records []*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// Summary counts valid and invalid records.
type Summary struct {
	Total   int
	Valid   int
	Invalid int
}

// Summarize counts records by validity.
func Summarize(records []*Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.Valid() {
			s.Valid++
		}
	}
	s.Invalid = s.Total - s.Valid
	return s
}
