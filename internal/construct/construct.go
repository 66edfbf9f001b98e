package construct

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"qfrbench/internal/circuit"
	"qfrbench/internal/record"
)

// Options are the flags passed to a construction routine.
type Options struct {
	StoreDD     bool `json:"store_dd"`
	StoreMatrix bool `json:"store_matrix"`
	ReduceT     bool `json:"reduce_t"`
}

// Functionality is the optional functional description of a constructed circuit.
type Functionality struct {
	Matrix Matrix `json:"matrix,omitempty"`
	DD     string `json:"dd,omitempty"`
}

// Result is what a construction routine reports for one circuit.
type Result struct {
	Circuit       record.Fields  `json:"circuit"`
	Statistics    record.Fields  `json:"statistics"`
	Functionality *Functionality `json:"functionality,omitempty"`
}

// Matrix returns the functional matrix, or nil when none was stored.
func (r Result) Matrix() Matrix {
	if r.Functionality == nil {
		return nil
	}
	return r.Functionality.Matrix
}

// Constructor builds the functionality of a circuit and reports statistics.
type Constructor interface {
	Construct(ctx context.Context, c *circuit.Circuit, opts Options) (Result, error)
}

// ConstructorFunc adapts a function to the Constructor interface.
type ConstructorFunc func(ctx context.Context, c *circuit.Circuit, opts Options) (Result, error)

// Construct calls f.
func (f ConstructorFunc) Construct(ctx context.Context, c *circuit.Circuit, opts Options) (Result, error) {
	return f(ctx, c, opts)
}

var (
	// ErrCircuitTooLarge is returned when a circuit exceeds the constructor's width limit.
	ErrCircuitTooLarge = errors.New("circuit too large")
	// ErrNonUnitary is returned when a circuit still contains measurements.
	ErrNonUnitary = errors.New("circuit contains non-unitary operations")
	// ErrUnsupportedGate is returned for gates the constructor cannot apply.
	ErrUnsupportedGate = errors.New("unsupported gate")
)

// CircuitFields converts circuit metadata into the fields reported under "circuit".
func CircuitFields(meta circuit.Metadata) record.Fields {
	return record.Of(
		"name", meta.Name,
		"n_qubits", meta.NumQubits,
		"n_gates", meta.NumGates,
		"depth", meta.Depth,
	)
}

// DefaultTolerance is the element-wise tolerance used to compare functional matrices.
const DefaultTolerance = 1e-9

// Matrix is a dense complex matrix in row-major order.
type Matrix [][]complex128

// Identity returns the dim × dim identity.
func Identity(dim int) Matrix {
	m := make(Matrix, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
		m[i][i] = 1
	}
	return m
}

// Dim returns the number of rows.
func (m Matrix) Dim() int {
	return len(m)
}

// Equal reports whether both matrices have the same shape and all elements
// are within tol of each other.
func (m Matrix) Equal(other Matrix, tol float64) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
		for j := range m[i] {
			if cmplx.Abs(m[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// Transpose returns a new transposed matrix.
func (m Matrix) Transpose() Matrix {
	if len(m) == 0 {
		return Matrix{}
	}
	out := make(Matrix, len(m[0]))
	for j := range out {
		out[j] = make([]complex128, len(m))
		for i := range m {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// MarshalJSON encodes the matrix as rows of [re, im] pairs.
func (m Matrix) MarshalJSON() ([]byte, error) {
	rows := make([][][2]float64, len(m))
	for i, row := range m {
		rows[i] = make([][2]float64, len(row))
		for j, v := range row {
			rows[i][j] = [2]float64{real(v), imag(v)}
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes rows of [re, im] pairs. Plain numbers are accepted as real values.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("decode matrix: %w", err)
	}
	out := make(Matrix, len(rows))
	for i, row := range rows {
		out[i] = make([]complex128, len(row))
		for j, raw := range row {
			var pair [2]float64
			if err := json.Unmarshal(raw, &pair); err == nil {
				out[i][j] = complex(pair[0], pair[1])
				continue
			}
			var re float64
			if err := json.Unmarshal(raw, &re); err != nil {
				return fmt.Errorf("decode matrix element [%d][%d]: %w", i, j, err)
			}
			out[i][j] = complex(re, 0)
		}
	}
	*m = out
	return nil
}

func roundKey(v complex128) [2]int64 {
	const scale = 1e10
	return [2]int64{int64(math.Round(real(v) * scale)), int64(math.Round(imag(v) * scale))}
}
