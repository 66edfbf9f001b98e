package construct

import (
	"context"
	"fmt"
	"time"

	"qfrbench/internal/circuit"
	"qfrbench/internal/record"
)

// DefaultMaxQubits bounds the width of circuits the builtin constructor accepts.
const DefaultMaxQubits = 10

// Builtin constructs the dense unitary of a circuit and reduces it into a
// shared quadtree whose size is reported as the node count. With ReduceT the
// quadtree also shares nodes that are transposes of each other.
type Builtin struct {
	MaxQubits int
	Now       func() time.Time
}

// NewBuiltin returns a builtin constructor with the default width limit.
func NewBuiltin() *Builtin {
	return &Builtin{MaxQubits: DefaultMaxQubits}
}

// Construct implements Constructor.
func (b *Builtin) Construct(ctx context.Context, c *circuit.Circuit, opts Options) (Result, error) {
	if c == nil {
		return Result{}, fmt.Errorf("construct: circuit is nil")
	}
	limit := b.MaxQubits
	if limit <= 0 {
		limit = DefaultMaxQubits
	}
	if c.NumQubits > limit {
		return Result{}, fmt.Errorf("%w: %d qubits exceeds limit of %d", ErrCircuitTooLarge, c.NumQubits, limit)
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}
	start := now()

	kernels := make([]kernel, 0, len(c.Gates))
	for i, g := range c.Gates {
		if g.IsBarrier() {
			continue
		}
		if g.IsMeasurement() {
			return Result{}, fmt.Errorf("%w: measurement at position %d", ErrNonUnitary, i)
		}
		k, err := compile(g)
		if err != nil {
			return Result{}, fmt.Errorf("gate %d: %w", i, err)
		}
		kernels = append(kernels, k)
	}

	// Column j of the unitary is the image of basis state j.
	dim := 1 << c.NumQubits
	columns := Identity(dim)
	for _, column := range columns {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		for _, k := range kernels {
			k(column)
		}
	}
	unitary := columns.Transpose()

	dd := newDiagram(opts.ReduceT)
	root := dd.build(unitary)
	elapsed := now().Sub(start)

	result := Result{
		Circuit: CircuitFields(c.Metadata()),
		Statistics: record.Of(
			"construction_time", elapsed.Seconds(),
			"final_nodecount", dd.NodeCount(),
		),
	}
	if opts.StoreMatrix || opts.StoreDD {
		result.Functionality = &Functionality{}
		if opts.StoreMatrix {
			result.Functionality.Matrix = dd.expand(root, dim)
		}
		if opts.StoreDD {
			result.Functionality.DD = dd.dump(root)
		}
	}
	return result, nil
}
