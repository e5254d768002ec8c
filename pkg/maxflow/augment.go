package maxflow

import (
	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
	"github.com/lintang-b-s/graphcut/pkg/util"
)

/*
augment pushes the bottleneck capacity along source -> ... -> tail(middle) -> head(middle) -> ... -> sink.

in the source tree the flow runs from parent to child, i.e. along the sister of each parent
arc; in the sink tree it runs from child to parent, along the parent arc itself. a tree arc
that gets saturated severs its child, and a root whose terminal capacity runs out is severed
from the terminal. both become orphans.
*/
func (bk *BKMaxFlow[T]) augment(middle da.Index) {
	g := bk.graph

	bottleneck := g.GetArc(middle).GetResidual()

	u := g.GetArcTail(middle)
	for {
		a := g.GetNode(u).GetParent()
		if a == da.TERMINAL_ARC {
			break
		}
		bottleneck = min(bottleneck, g.GetArc(da.Sister(a)).GetResidual())
		u = g.GetArc(a).GetHead()
	}
	bottleneck = min(bottleneck, g.GetNode(u).GetSourceResidual())

	u = g.GetArc(middle).GetHead()
	for {
		a := g.GetNode(u).GetParent()
		if a == da.TERMINAL_ARC {
			break
		}
		bottleneck = min(bottleneck, g.GetArc(a).GetResidual())
		u = g.GetArc(a).GetHead()
	}
	bottleneck = min(bottleneck, g.GetNode(u).GetSinkResidual())
	util.AssertPanic(bottleneck > 0, "augmenting path must have positive residual capacity")

	g.PushFlow(middle, bottleneck)

	// source tree
	u = g.GetArcTail(middle)
	for {
		a := g.GetNode(u).GetParent()
		if a == da.TERMINAL_ARC {
			break
		}
		parent := g.GetArc(a).GetHead()
		g.PushFlow(da.Sister(a), bottleneck)
		if g.GetArc(da.Sister(a)).GetResidual() <= 0 {
			bk.setOrphan(u)
		}
		u = parent
	}
	root := g.GetNode(u)
	root.PushFromSource(bottleneck)
	if root.GetSourceResidual() <= 0 {
		bk.setOrphan(u)
	}

	// sink tree
	u = g.GetArc(middle).GetHead()
	for {
		a := g.GetNode(u).GetParent()
		if a == da.TERMINAL_ARC {
			break
		}
		parent := g.GetArc(a).GetHead()
		g.PushFlow(a, bottleneck)
		if g.GetArc(a).GetResidual() <= 0 {
			bk.setOrphan(u)
		}
		u = parent
	}
	root = g.GetNode(u)
	root.PushToSink(bottleneck)
	if root.GetSinkResidual() <= 0 {
		bk.setOrphan(u)
	}

	bk.flow += bottleneck
	bk.stats.Augmentations++
}
