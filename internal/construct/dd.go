package construct

import (
	"fmt"
	"math/cmplx"
	"strings"
)

// edge points at a node with a complex weight. A transposed edge denotes the
// transpose of the node it points at.
type edge struct {
	w          complex128
	node       int
	transposed bool
}

func (e edge) isZero() bool {
	return e.w == 0
}

// ddNode holds the four quadrant edges [top-left, top-right, bottom-left, bottom-right].
type ddNode struct {
	children [4]edge
}

type nodeKey [4]struct {
	w          [2]int64
	node       int
	transposed bool
}

// diagram is a hash-consed quadtree over a square matrix of size 2^n. Node 0
// is the terminal.
type diagram struct {
	nodes          []ddNode
	unique         map[nodeKey]int
	shareTranspose bool
	tol            float64
}

func newDiagram(shareTranspose bool) *diagram {
	return &diagram{
		nodes:          []ddNode{{}},
		unique:         map[nodeKey]int{},
		shareTranspose: shareTranspose,
		tol:            1e-12,
	}
}

// NodeCount returns the number of nodes including the terminal.
func (d *diagram) NodeCount() int {
	return len(d.nodes)
}

func (d *diagram) build(m Matrix) edge {
	return d.buildBlock(m, 0, 0, len(m))
}

func (d *diagram) buildBlock(m Matrix, row, col, size int) edge {
	if size == 1 {
		v := m[row][col]
		if cmplx.Abs(v) < d.tol {
			return edge{}
		}
		return edge{w: v}
	}
	half := size / 2
	children := [4]edge{
		d.buildBlock(m, row, col, half),
		d.buildBlock(m, row, col+half, half),
		d.buildBlock(m, row+half, col, half),
		d.buildBlock(m, row+half, col+half, half),
	}
	return d.makeNode(children)
}

// makeNode normalises the children by the largest weight and returns a
// shared node for them.
func (d *diagram) makeNode(children [4]edge) edge {
	norm := complex128(0)
	for _, c := range children {
		if cmplx.Abs(c.w) > cmplx.Abs(norm)+d.tol {
			norm = c.w
		}
	}
	if norm == 0 {
		return edge{}
	}
	for i := range children {
		if children[i].isZero() {
			children[i] = edge{}
			continue
		}
		children[i].w /= norm
	}

	key := keyOf(children)
	if id, ok := d.unique[key]; ok {
		return edge{w: norm, node: id}
	}
	if d.shareTranspose {
		if id, ok := d.unique[keyOf(transposeChildren(children))]; ok {
			return edge{w: norm, node: id, transposed: true}
		}
	}
	d.nodes = append(d.nodes, ddNode{children: children})
	id := len(d.nodes) - 1
	d.unique[key] = id
	return edge{w: norm, node: id}
}

// transposeChildren returns the children of the transposed node.
func transposeChildren(children [4]edge) [4]edge {
	out := [4]edge{children[0], children[2], children[1], children[3]}
	for i := range out {
		if out[i].node != 0 {
			out[i].transposed = !out[i].transposed
		}
	}
	return out
}

func keyOf(children [4]edge) nodeKey {
	var key nodeKey
	for i, c := range children {
		key[i].w = roundKey(c.w)
		key[i].node = c.node
		key[i].transposed = c.transposed
	}
	return key
}

// expand rebuilds the dense matrix of size×size denoted by e.
func (d *diagram) expand(e edge, size int) Matrix {
	out := make(Matrix, size)
	for i := range out {
		out[i] = make([]complex128, size)
	}
	d.fill(out, e, 0, 0, size, false)
	return out
}

// fill writes the block denoted by e into out. When transposed is set the
// block is written transposed relative to (row, col).
func (d *diagram) fill(out Matrix, e edge, row, col, size int, transposed bool) {
	if e.isZero() {
		return
	}
	if size == 1 {
		out[row][col] += e.w
		return
	}
	t := transposed != e.transposed
	half := size / 2
	node := d.nodes[e.node]
	for i, child := range node.children {
		r, c := i/2, i%2
		if t {
			r, c = c, r
		}
		child.w *= e.w
		d.fill(out, child, row+r*half, col+c*half, half, t)
	}
}

// dump renders the node table, one node per line.
func (d *diagram) dump(root edge) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "root: %s\n", formatEdge(root))
	for id := 1; id < len(d.nodes); id++ {
		node := d.nodes[id]
		parts := make([]string, len(node.children))
		for i, c := range node.children {
			parts[i] = formatEdge(c)
		}
		fmt.Fprintf(&sb, "%d: [%s]\n", id, strings.Join(parts, " "))
	}
	return sb.String()
}

func formatEdge(e edge) string {
	if e.isZero() {
		return "0"
	}
	suffix := ""
	if e.transposed {
		suffix = "ᵀ"
	}
	return fmt.Sprintf("(%.6g%+.6gi)·n%d%s", real(e.w), imag(e.w), e.node, suffix)
}
