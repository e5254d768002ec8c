package datastructure

import (
	"math"

	"github.com/lintang-b-s/graphcut/pkg/util"
	"golang.org/x/exp/constraints"
)

type Index uint32

// Capacity is the numeric type of terminal and edge capacities. unsigned types are left out,
// capacities are validated with a "< 0" check that would be meaningless for them.
type Capacity interface {
	constraints.Signed | constraints.Float
}

// parent markers. every other parent value is an arc index.
const (
	NO_ARC       Index = math.MaxUint32     // free node / end of an arc list
	TERMINAL_ARC Index = math.MaxUint32 - 1 // tree root, parent is the terminal itself
	ORPHAN_ARC   Index = math.MaxUint32 - 2 // parent link severed, waiting for adoption
	MAX_INDEX    Index = math.MaxUint32 - 3
)

type Node[T Capacity] struct {
	firstArc Index // head of the outgoing arc list
	parent   Index // arc from this node towards its tree parent, or one of the markers above

	sourceCap, sinkCap           T // accumulated terminal capacities, as constructed
	sourceResidual, sinkResidual T // terminal capacities left after the flow pushed so far

	ts     int // time of the last origin check
	dist   int // distance to the tree root, valid when ts is recent
	isSink bool
}

func (n *Node[T]) GetFirstArc() Index {
	return n.firstArc
}

func (n *Node[T]) GetParent() Index {
	return n.parent
}

func (n *Node[T]) SetParent(a Index) {
	n.parent = a
}

// HasParent reports whether the node currently belongs to a search tree.
func (n *Node[T]) HasParent() bool {
	return n.parent != NO_ARC
}

// IsArcParent reports whether the parent link is a real arc (not a root, orphan or free node).
func (n *Node[T]) IsArcParent() bool {
	return n.parent < MAX_INDEX
}

func (n *Node[T]) IsSink() bool {
	return n.isSink
}

func (n *Node[T]) SetIsSink(isSink bool) {
	n.isSink = isSink
}

func (n *Node[T]) GetTimestamp() int {
	return n.ts
}

func (n *Node[T]) SetTimestamp(ts int) {
	n.ts = ts
}

func (n *Node[T]) GetDist() int {
	return n.dist
}

func (n *Node[T]) SetDist(dist int) {
	n.dist = dist
}

func (n *Node[T]) GetSourceCap() T {
	return n.sourceCap
}

func (n *Node[T]) GetSinkCap() T {
	return n.sinkCap
}

func (n *Node[T]) GetSourceResidual() T {
	return n.sourceResidual
}

func (n *Node[T]) GetSinkResidual() T {
	return n.sinkResidual
}

// PushFromSource consumes delta of the residual source capacity.
func (n *Node[T]) PushFromSource(delta T) {
	n.sourceResidual -= delta
}

// PushToSink consumes delta of the residual sink capacity.
func (n *Node[T]) PushToSink(delta T) {
	n.sinkResidual -= delta
}

type Arc[T Capacity] struct {
	head     Index
	next     Index // next arc with the same tail
	capacity T
	residual T
}

func (a *Arc[T]) GetHead() Index {
	return a.head
}

func (a *Arc[T]) GetNext() Index {
	return a.next
}

func (a *Arc[T]) GetCapacity() T {
	return a.capacity
}

func (a *Arc[T]) GetResidual() T {
	return a.residual
}

// GetFlow is the flow currently routed along the arc; negative when the paired arc carries it.
func (a *Arc[T]) GetFlow() T {
	return a.capacity - a.residual
}

/*
Graph stores nodes and arcs in two contiguous arenas and links everything by index, so
identities survive slice growth and two graphs never share storage.

every edge u-v is an arc pair allocated back to back: arc 2k is u->v and arc 2k+1 is v->u,
so the sister (residual pair) of arc a is a^1. outgoing arcs of a node form a singly linked
list through Arc.next, newest first.
*/
type Graph[T Capacity] struct {
	nodes    []Node[T]
	arcs     []Arc[T]
	nodeHint int
	arcHint  int
	fixed    bool // growth beyond the hints is an error
	solved   bool
}

// NewGraph creates an empty graph preallocated for nodeHint nodes and edgeHint edges.
// the graph grows past the hints when needed.
func NewGraph[T Capacity](nodeHint, edgeHint int) *Graph[T] {
	return newGraph[T](nodeHint, edgeHint, false)
}

// NewFixedGraph is NewGraph with growth disallowed: exceeding a hint returns ErrCapacityExceeded.
func NewFixedGraph[T Capacity](nodeHint, edgeHint int) *Graph[T] {
	return newGraph[T](nodeHint, edgeHint, true)
}

func newGraph[T Capacity](nodeHint, edgeHint int, fixed bool) *Graph[T] {
	if nodeHint < 0 {
		nodeHint = 0
	}
	if edgeHint < 0 {
		edgeHint = 0
	}
	return &Graph[T]{
		nodes:    make([]Node[T], 0, nodeHint),
		arcs:     make([]Arc[T], 0, 2*edgeHint),
		nodeHint: nodeHint,
		arcHint:  2 * edgeHint,
		fixed:    fixed,
	}
}

// AddNodes appends count FREE nodes with zero terminal capacities and returns the index of
// the first one. the new indices are contiguous.
func (g *Graph[T]) AddNodes(count int) (Index, error) {
	if g.solved {
		return 0, util.WrapErrorf(ErrGraphSolved, util.ErrBadParamInput, "add nodes")
	}
	if count < 0 {
		return 0, util.WrapErrorf(ErrInvalidNode, util.ErrBadParamInput, "negative node count %d", count)
	}
	first := len(g.nodes)
	if uint64(first)+uint64(count) > uint64(MAX_INDEX) {
		return 0, util.WrapErrorf(ErrCapacityExceeded, util.ErrBadParamInput,
			"%d nodes do not fit in the index space", first+count)
	}
	if g.fixed && first+count > g.nodeHint {
		return 0, util.WrapErrorf(ErrCapacityExceeded, util.ErrBadParamInput,
			"adding %d nodes to %d exceeds the hint of %d", count, first, g.nodeHint)
	}

	for i := 0; i < count; i++ {
		g.nodes = append(g.nodes, Node[T]{firstArc: NO_ARC, parent: NO_ARC})
	}
	return Index(first), nil
}

// AddTerminalWeights ADDS toSource and toSink to the terminal capacities of u. calling it
// twice is the same as calling it once with the summed arguments.
func (g *Graph[T]) AddTerminalWeights(u Index, toSource, toSink T) error {
	if g.solved {
		return util.WrapErrorf(ErrGraphSolved, util.ErrBadParamInput, "add terminal weights")
	}
	if !g.validNode(u) {
		return util.WrapErrorf(ErrInvalidNode, util.ErrBadParamInput, "node %d of %d", u, len(g.nodes))
	}
	if isNegative(toSource) || isNegative(toSink) {
		return util.WrapErrorf(ErrNegativeCapacity, util.ErrBadParamInput,
			"terminal weights of node %d: source %v sink %v", u, toSource, toSink)
	}

	n := &g.nodes[u]
	n.sourceCap += toSource
	n.sinkCap += toSink
	n.sourceResidual += toSource
	n.sinkResidual += toSink
	return nil
}

// AddEdge appends the arc u->v with capacity capUV and its sister v->u with capacity capVU.
// parallel edges are allowed and behave as summed capacity.
func (g *Graph[T]) AddEdge(u, v Index, capUV, capVU T) error {
	if g.solved {
		return util.WrapErrorf(ErrGraphSolved, util.ErrBadParamInput, "add edge")
	}
	if u == v {
		return util.WrapErrorf(ErrInvalidEdge, util.ErrBadParamInput, "self loop on node %d", u)
	}
	if !g.validNode(u) || !g.validNode(v) {
		return util.WrapErrorf(ErrInvalidEdge, util.ErrBadParamInput,
			"edge %d-%d references a node outside [0, %d)", u, v, len(g.nodes))
	}
	if isNegative(capUV) || isNegative(capVU) {
		return util.WrapErrorf(ErrNegativeCapacity, util.ErrBadParamInput,
			"edge %d-%d: capacities %v/%v", u, v, capUV, capVU)
	}
	a := len(g.arcs)
	if uint64(a)+2 > uint64(MAX_INDEX) {
		return util.WrapErrorf(ErrCapacityExceeded, util.ErrBadParamInput, "arc index space exhausted")
	}
	if g.fixed && a+2 > g.arcHint {
		return util.WrapErrorf(ErrCapacityExceeded, util.ErrBadParamInput,
			"edge %d-%d exceeds the hint of %d edges", u, v, g.arcHint/2)
	}

	g.arcs = append(g.arcs,
		Arc[T]{head: v, next: g.nodes[u].firstArc, capacity: capUV, residual: capUV},
		Arc[T]{head: u, next: g.nodes[v].firstArc, capacity: capVU, residual: capVU},
	)
	g.nodes[u].firstArc = Index(a)
	g.nodes[v].firstArc = Index(a + 1)
	return nil
}

func (g *Graph[T]) validNode(u Index) bool {
	return int(u) < len(g.nodes)
}

// isNegative also rejects NaN, which would break every comparison the solver makes.
func isNegative[T Capacity](c T) bool {
	return c < 0 || c != c
}

func (g *Graph[T]) NumberOfNodes() int {
	return len(g.nodes)
}

// NumberOfArcs counts directed arcs, two per edge.
func (g *Graph[T]) NumberOfArcs() int {
	return len(g.arcs)
}

func (g *Graph[T]) NumberOfEdges() int {
	return len(g.arcs) / 2
}

func (g *Graph[T]) GetNode(u Index) *Node[T] {
	return &g.nodes[u]
}

func (g *Graph[T]) GetArc(a Index) *Arc[T] {
	return &g.arcs[a]
}

// Sister returns the residual pair of arc a.
func Sister(a Index) Index {
	return a ^ 1
}

// GetArcTail returns the node arc a leaves from, i.e. the head of its sister.
func (g *Graph[T]) GetArcTail(a Index) Index {
	return g.arcs[a^1].head
}

// PushFlow moves delta units along arc a: its residual drops, the sister's residual grows.
func (g *Graph[T]) PushFlow(a Index, delta T) {
	g.arcs[a].residual -= delta
	g.arcs[a^1].residual += delta
}

func (g *Graph[T]) ForEachArcOf(u Index, handle func(a Index, arc *Arc[T])) {
	for a := g.nodes[u].firstArc; a != NO_ARC; a = g.arcs[a].next {
		handle(a, &g.arcs[a])
	}
}

func (g *Graph[T]) ForEachNode(handle func(u Index, n *Node[T])) {
	for u := range g.nodes {
		handle(Index(u), &g.nodes[u])
	}
}

// MarkSolved closes construction. it returns false if the graph was already solved.
func (g *Graph[T]) MarkSolved() bool {
	if g.solved {
		return false
	}
	g.solved = true
	return true
}

func (g *Graph[T]) IsSolved() bool {
	return g.solved
}

// Clone returns an unsolved copy with the same construction state and all residuals reset
// to the constructed capacities.
func (g *Graph[T]) Clone() *Graph[T] {
	cg := &Graph[T]{
		nodes:    make([]Node[T], len(g.nodes), max(cap(g.nodes), len(g.nodes))),
		arcs:     make([]Arc[T], len(g.arcs), max(cap(g.arcs), len(g.arcs))),
		nodeHint: g.nodeHint,
		arcHint:  g.arcHint,
		fixed:    g.fixed,
	}
	for u, n := range g.nodes {
		cg.nodes[u] = Node[T]{
			firstArc:       n.firstArc,
			parent:         NO_ARC,
			sourceCap:      n.sourceCap,
			sinkCap:        n.sinkCap,
			sourceResidual: n.sourceCap,
			sinkResidual:   n.sinkCap,
		}
	}
	for a, arc := range g.arcs {
		cg.arcs[a] = Arc[T]{head: arc.head, next: arc.next, capacity: arc.capacity, residual: arc.capacity}
	}
	return cg
}
