package maxflow

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/graphcut/pkg"
	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
	"github.com/lintang-b-s/graphcut/pkg/logger"
	"github.com/lintang-b-s/graphcut/pkg/util"
	"go.uber.org/zap"
)

/*
BKMaxFlow is one solve session of the augmenting-path algorithm of
[An Experimental Comparison of Min-Cut/Max-Flow Algorithms for Energy Minimization in Vision, Boykov & Kolmogorov]
https://www.csd.uwo.ca/~yboykov/Papers/pami04.pdf

two search trees are grown from the terminals: S from the source and T from the sink. a
tree node's parent link is the arc towards the root, so the path to a root is found by
walking parents. growth, augmentation and adoption alternate:
  - growth: an active node claims free neighbours reachable through non saturated arcs,
    until it touches a node of the other tree (augmenting path found).
  - augmentation: push the bottleneck along the path. saturated tree arcs cut their child
    off, and the child becomes an orphan.
  - adoption: every orphan looks for a new parent in its own tree whose path reaches the
    root. orphans that find none become free and orphan their own children.

the trees survive between augmentations, which is what keeps the total work close to
linear in the arcs touched on vision graphs.

the active queue, the orphan queue and the time counter belong to the session, so
independent graphs can be solved concurrently.
*/
type BKMaxFlow[T da.Capacity] struct {
	graph   *da.Graph[T]
	active  *da.ActiveQueue
	orphans *da.OrphanQueue
	time    int // incremented after every growth step, stamps origin checks during adoption
	flow    T
	solved  bool
	stats   Stats
	log     *zap.Logger
}

func NewBKMaxFlow[T da.Capacity](graph *da.Graph[T], log *zap.Logger) *BKMaxFlow[T] {
	return &BKMaxFlow[T]{
		graph: graph,
		log:   logger.OrNop(log),
	}
}

// ComputeMaxflowMinCut runs the solver to completion and returns the max-flow value, which
// equals the min-cut value. a graph can be solved once; later calls return da.ErrGraphSolved.
func (bk *BKMaxFlow[T]) ComputeMaxflowMinCut() (T, error) {
	if !bk.graph.MarkSolved() {
		return 0, util.WrapErrorf(da.ErrGraphSolved, util.ErrBadParamInput, "compute maxflow")
	}
	start := time.Now()

	n := bk.graph.NumberOfNodes()
	bk.active = da.NewActiveQueue(n)
	bk.orphans = da.NewOrphanQueue(64)
	bk.initTrees()

	var (
		current    da.Index
		hasCurrent bool
	)
	for {
		var (
			u     da.Index
			found bool
		)
		if hasCurrent {
			// keep growing from the node that found the last path, as long as it is still in a tree
			bk.active.Release(current)
			if bk.graph.GetNode(current).HasParent() {
				u, found = current, true
			}
			hasCurrent = false
		}
		if !found {
			if u, found = bk.nextActive(); !found {
				break
			}
		}

		middle, pathFound := bk.grow(u)
		bk.time++

		if pathFound {
			bk.active.Hold(u)
			current, hasCurrent = u, true

			bk.augment(middle)
			bk.adoptOrphans()
		}
	}

	bk.solved = true
	if pkg.DEBUG {
		err := CheckFlowConservation(bk.graph)
		util.AssertPanic(err == nil, fmt.Sprintf("flow conservation violated: %v", err))
	}

	bk.log.Debug("maxflow solved",
		zap.Int("nodes", n),
		zap.Int("arcs", bk.graph.NumberOfArcs()),
		zap.Any("flow", bk.flow),
		zap.Uint64("augmentations", bk.stats.Augmentations),
		zap.Uint64("arc_scans", bk.stats.ArcScans),
		zap.Uint64("adoptions", bk.stats.Adoptions),
		zap.Uint64("freed_orphans", bk.stats.FreedOrphans),
		zap.Duration("took", time.Since(start)),
	)
	return bk.flow, nil
}

// initTrees routes min(sourceCap, sinkCap) of every node straight from source to sink and makes
// nodes with leftover terminal capacity the active roots of their tree.
func (bk *BKMaxFlow[T]) initTrees() {
	bk.graph.ForEachNode(func(u da.Index, n *da.Node[T]) {
		d := min(n.GetSourceResidual(), n.GetSinkResidual())
		if d > 0 {
			n.PushFromSource(d)
			n.PushToSink(d)
			bk.flow += d
		}

		n.SetTimestamp(0)
		switch {
		case n.GetSourceResidual() > 0:
			n.SetIsSink(false)
			n.SetParent(da.TERMINAL_ARC)
			n.SetDist(1)
			bk.active.SetActive(u)
		case n.GetSinkResidual() > 0:
			n.SetIsSink(true)
			n.SetParent(da.TERMINAL_ARC)
			n.SetDist(1)
			bk.active.SetActive(u)
		default:
			n.SetParent(da.NO_ARC)
		}
	})
}

// nextActive pops queued nodes until it finds one that still belongs to a tree.
func (bk *BKMaxFlow[T]) nextActive() (da.Index, bool) {
	for {
		u, ok := bk.active.Pop()
		if !ok {
			return 0, false
		}
		if bk.graph.GetNode(u).HasParent() {
			return u, true
		}
	}
}

/*
grow scans the arcs of active node u. free neighbours joined through a non saturated arc
are claimed into u's tree; a neighbour already in the tree is re-parented to u when u's
origin was checked at least as recently and u is closer to the root (shorter paths).

returns the arc joining the two trees, oriented from the source tree to the sink tree.
*/
func (bk *BKMaxFlow[T]) grow(u da.Index) (da.Index, bool) {
	g := bk.graph
	un := g.GetNode(u)

	for a := un.GetFirstArc(); a != da.NO_ARC; a = g.GetArc(a).GetNext() {
		bk.stats.ArcScans++
		arc := g.GetArc(a)

		// source tree grows along u->v, sink tree along v->u
		var residual T
		if !un.IsSink() {
			residual = arc.GetResidual()
		} else {
			residual = g.GetArc(da.Sister(a)).GetResidual()
		}
		if residual <= 0 {
			continue
		}

		v := arc.GetHead()
		vn := g.GetNode(v)
		switch {
		case !vn.HasParent():
			vn.SetIsSink(un.IsSink())
			vn.SetParent(da.Sister(a))
			vn.SetTimestamp(un.GetTimestamp())
			vn.SetDist(un.GetDist() + 1)
			bk.active.SetActive(v)
		case vn.IsSink() != un.IsSink():
			if un.IsSink() {
				return da.Sister(a), true
			}
			return a, true
		case vn.GetTimestamp() <= un.GetTimestamp() && vn.GetDist() > un.GetDist():
			vn.SetParent(da.Sister(a))
			vn.SetTimestamp(un.GetTimestamp())
			vn.SetDist(un.GetDist() + 1)
		}
	}
	return da.NO_ARC, false
}

func (bk *BKMaxFlow[T]) setOrphan(u da.Index) {
	bk.graph.GetNode(u).SetParent(da.ORPHAN_ARC)
	bk.orphans.Push(u)
}

func (bk *BKMaxFlow[T]) GetStats() Stats {
	return bk.stats
}

// GetFlow returns the flow pushed so far; the max-flow value once solved.
func (bk *BKMaxFlow[T]) GetFlow() T {
	return bk.flow
}

func (bk *BKMaxFlow[T]) IsSolved() bool {
	return bk.solved
}

// WhatSegment reports the side of the min cut u ended on. nodes that no tree reached get
// pkg.DEFAULT_SEGMENT.
func (bk *BKMaxFlow[T]) WhatSegment(u da.Index) (pkg.Segment, error) {
	if !bk.solved {
		return pkg.DEFAULT_SEGMENT, util.WrapErrorf(ErrNotSolved, util.ErrBadParamInput, "segment of node %d", u)
	}
	if int(u) >= bk.graph.NumberOfNodes() {
		return pkg.DEFAULT_SEGMENT, util.WrapErrorf(da.ErrInvalidNode, util.ErrBadParamInput,
			"node %d of %d", u, bk.graph.NumberOfNodes())
	}
	return bk.segmentOf(bk.graph.GetNode(u)), nil
}

func (bk *BKMaxFlow[T]) segmentOf(n *da.Node[T]) pkg.Segment {
	if !n.HasParent() {
		return pkg.DEFAULT_SEGMENT
	}
	if n.IsSink() {
		return pkg.SINK
	}
	return pkg.SOURCE
}

// GetMinCut collects the segment of every node and the cut value.
func (bk *BKMaxFlow[T]) GetMinCut() (*MinCut[T], error) {
	if !bk.solved {
		return nil, util.WrapErrorf(ErrNotSolved, util.ErrBadParamInput, "min cut")
	}
	minCut := NewMinCut[T](bk.graph.NumberOfNodes())
	bk.graph.ForEachNode(func(u da.Index, n *da.Node[T]) {
		minCut.SetFlag(u, bk.segmentOf(n) == pkg.SINK)
	})
	minCut.setFlow(bk.flow)
	return minCut, nil
}
