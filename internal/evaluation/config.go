package evaluation

import (
	"errors"
	"fmt"

	"qfrbench/internal/construct"
)

// Qubit counts outside [MinQubits, MaxQubits) are rejected at construction.
const (
	MinQubits = 2
	MaxQubits = 130
)

// ErrInvalidQubitRange is wrapped by RangeError.
var ErrInvalidQubitRange = errors.New("invalid qubit range")

// RangeError reports a qubit range outside the supported bounds.
type RangeError struct {
	Start int
	Stop  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("too many or too few qubits: range [%d, %d) must lie within [%d, %d)", e.Start, e.Stop, MinQubits, MaxQubits)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidQubitRange
}

// Range is the half-open interval [Start, Stop) of qubit counts.
type Range struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// Len returns the number of qubit counts in the range.
func (r Range) Len() int {
	return max(0, r.Stop-r.Start)
}

// Values returns the qubit counts in ascending order.
func (r Range) Values() []int {
	out := make([]int, 0, r.Len())
	for n := r.Start; n < r.Stop; n++ {
		out = append(out, n)
	}
	return out
}

// Check returns a *RangeError when the range is outside the supported bounds.
func (r Range) Check() error {
	if r.Start < MinQubits || r.Stop > MaxQubits {
		return &RangeError{Start: r.Start, Stop: r.Stop}
	}
	return nil
}

// Params is one set of construction flags, grouped under Label.
type Params struct {
	Label       string `json:"label"`
	StoreDD     bool   `json:"store_dd"`
	StoreMatrix bool   `json:"store_matrix"`
	ReduceT     bool   `json:"reduce_t"`
}

// Options converts the record into construction options.
func (p Params) Options() construct.Options {
	return construct.Options{StoreDD: p.StoreDD, StoreMatrix: p.StoreMatrix, ReduceT: p.ReduceT}
}

// Config describes one sweep.
type Config struct {
	Benchmarks []string `json:"benchmarks"`
	Qubits     Range    `json:"qubits"`
	Level      string   `json:"abstraction_level"`
	Params     []Params `json:"params"`
	Verbose    bool     `json:"verbose"`
}

// Total returns the number of construction attempts the sweep plans.
func (c Config) Total() int {
	return c.Qubits.Len() * len(c.Benchmarks) * len(c.Params)
}

func (c Config) clone() Config {
	out := c
	out.Benchmarks = append([]string(nil), c.Benchmarks...)
	out.Params = append([]Params(nil), c.Params...)
	return out
}
