package maxflow

import (
	"github.com/lintang-b-s/graphcut/pkg"
	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
)

func (bk *BKMaxFlow[T]) adoptOrphans() {
	for {
		u, ok := bk.orphans.Pop()
		if !ok {
			return
		}
		bk.processOrphan(u)
	}
}

/*
processOrphan looks for a new parent for orphan u among its neighbours in the same tree that
can still send flow to u (source tree) or receive flow from u (sink tree). a candidate is
valid only if its parent chain reaches the terminal without passing through an orphan. among
valid candidates the one closest to the root wins.

when no candidate exists u becomes free: neighbours that could refill it are reactivated, and
its children become orphans themselves.
*/
func (bk *BKMaxFlow[T]) processOrphan(u da.Index) {
	g := bk.graph
	un := g.GetNode(u)
	sinkTree := un.IsSink()

	bestArc := da.NO_ARC
	bestDist := pkg.INFINITE_DIST

	for a := un.GetFirstArc(); a != da.NO_ARC; a = g.GetArc(a).GetNext() {
		if bk.treeResidual(a, sinkTree) <= 0 {
			continue
		}
		v := g.GetArc(a).GetHead()
		vn := g.GetNode(v)
		if vn.IsSink() != sinkTree || !vn.HasParent() {
			continue
		}

		d, ok := bk.originDistance(v)
		if !ok {
			continue
		}
		if d < bestDist {
			bestArc = a
			bestDist = d
		}
		bk.markPath(v, d)
	}

	if bestArc != da.NO_ARC {
		un.SetParent(bestArc)
		un.SetTimestamp(bk.time)
		un.SetDist(bestDist + 1)
		bk.stats.Adoptions++
		return
	}

	un.SetParent(da.NO_ARC)
	bk.stats.FreedOrphans++

	for a := un.GetFirstArc(); a != da.NO_ARC; a = g.GetArc(a).GetNext() {
		v := g.GetArc(a).GetHead()
		vn := g.GetNode(v)
		if vn.IsSink() != sinkTree || !vn.HasParent() {
			continue
		}
		if bk.treeResidual(a, sinkTree) > 0 {
			bk.active.SetActive(v)
		}
		if vn.IsArcParent() && g.GetArc(vn.GetParent()).GetHead() == u {
			bk.setOrphan(v)
		}
	}
}

// treeResidual is the capacity usable between u = tail(a) and its neighbour v = head(a) for
// the tree u lives in: v->u in the source tree, u->v in the sink tree.
func (bk *BKMaxFlow[T]) treeResidual(a da.Index, sinkTree bool) T {
	if sinkTree {
		return bk.graph.GetArc(a).GetResidual()
	}
	return bk.graph.GetArc(da.Sister(a)).GetResidual()
}

// originDistance walks the parent chain of v and returns its distance to the terminal, or
// false when the chain ends at an orphan. nodes checked during the current time step carry a
// valid distance, so the walk stops early on them.
func (bk *BKMaxFlow[T]) originDistance(v da.Index) (int, bool) {
	g := bk.graph
	d := 0
	for j := v; ; {
		jn := g.GetNode(j)
		if jn.GetTimestamp() == bk.time {
			return d + jn.GetDist(), true
		}

		a := jn.GetParent()
		d++
		switch a {
		case da.TERMINAL_ARC:
			jn.SetTimestamp(bk.time)
			jn.SetDist(1)
			return d, true
		case da.ORPHAN_ARC, da.NO_ARC:
			return 0, false
		}
		j = g.GetArc(a).GetHead()
	}
}

// markPath stamps the chain from v up to the first node already stamped in this time step
// with its distance, starting from d at v.
func (bk *BKMaxFlow[T]) markPath(v da.Index, d int) {
	g := bk.graph
	for j := v; g.GetNode(j).GetTimestamp() != bk.time; {
		jn := g.GetNode(j)
		jn.SetTimestamp(bk.time)
		jn.SetDist(d)
		d--
		j = g.GetArc(jn.GetParent()).GetHead()
	}
}
