package record

import (
	"encoding/json"
	"fmt"
)

// Results maps labels to the rows recorded under them. Labels keep the order
// in which they were first used and rows keep insertion order.
type Results struct {
	labels []string
	rows   map[string][]Fields
}

// NewResults returns an empty result set.
func NewResults() *Results {
	return &Results{rows: map[string][]Fields{}}
}

// Append adds a row under label, creating the label on first use.
func (r *Results) Append(label string, row Fields) {
	if r.rows == nil {
		r.rows = map[string][]Fields{}
	}
	if _, ok := r.rows[label]; !ok {
		r.labels = append(r.labels, label)
	}
	r.rows[label] = append(r.rows[label], row)
}

// Labels returns the labels in first-use order.
func (r *Results) Labels() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.labels...)
}

// Rows returns the rows recorded under label.
func (r *Results) Rows(label string) []Fields {
	if r == nil {
		return nil
	}
	return r.rows[label]
}

// Len returns the total number of rows across all labels.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, rows := range r.rows {
		n += len(rows)
	}
	return n
}

// Empty reports whether no label has been recorded.
func (r *Results) Empty() bool {
	return r == nil || len(r.labels) == 0
}

type labelRows struct {
	Label string   `json:"label"`
	Rows  []Fields `json:"rows"`
}

// MarshalJSON encodes the results as an ordered list of {label, rows}.
func (r *Results) MarshalJSON() ([]byte, error) {
	out := make([]labelRows, 0, len(r.labels))
	for _, label := range r.labels {
		out = append(out, labelRows{Label: label, Rows: r.rows[label]})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the list form written by MarshalJSON.
func (r *Results) UnmarshalJSON(data []byte) error {
	var in []labelRows
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode results: %w", err)
	}
	*r = Results{rows: map[string][]Fields{}}
	for _, entry := range in {
		if len(entry.Rows) == 0 {
			if _, ok := r.rows[entry.Label]; !ok {
				r.labels = append(r.labels, entry.Label)
				r.rows[entry.Label] = nil
			}
			continue
		}
		for _, row := range entry.Rows {
			r.Append(entry.Label, row)
		}
	}
	return nil
}
