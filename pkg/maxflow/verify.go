package maxflow

import (
	"fmt"
	"math"

	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
)

// FLOW_TOLERANCE is the relative slack allowed when float flows are compared.
const FLOW_TOLERANCE = 1e-9

/*
CutCapacity sums the constructed capacities severed by cut:
  - arcs leaving the source side towards the sink side,
  - the sink capacity of every source-side node,
  - the source capacity of every sink-side node.

by max-flow/min-cut duality this equals the flow of a correct solve.
*/
func CutCapacity[T da.Capacity](g *da.Graph[T], cut *MinCut[T]) T {
	var total T
	g.ForEachNode(func(u da.Index, n *da.Node[T]) {
		if cut.GetFlag(u) {
			total += n.GetSourceCap()
			return
		}
		total += n.GetSinkCap()
		g.ForEachArcOf(u, func(a da.Index, arc *da.Arc[T]) {
			if cut.GetFlag(arc.GetHead()) {
				total += arc.GetCapacity()
			}
		})
	})
	return total
}

// CheckFlowConservation verifies that every arc carries at most its capacity and that the flow
// entering each node (from the source and through arcs) equals the flow leaving it (to the
// sink and through arcs). it returns the first violation found.
func CheckFlowConservation[T da.Capacity](g *da.Graph[T]) error {
	for a := 0; a < g.NumberOfArcs(); a++ {
		arc := g.GetArc(da.Index(a))
		if arc.GetResidual() < 0 && !almostEqual(float64(arc.GetResidual()), 0, float64(arc.GetCapacity())) {
			return fmt.Errorf("arc %d carries %v over its capacity %v", a, arc.GetFlow(), arc.GetCapacity())
		}
	}

	var err error
	g.ForEachNode(func(u da.Index, n *da.Node[T]) {
		if err != nil {
			return
		}
		fromSource := n.GetSourceCap() - n.GetSourceResidual()
		toSink := n.GetSinkCap() - n.GetSinkResidual()
		if fromSource < 0 || toSink < 0 {
			err = fmt.Errorf("node %d terminal residuals exceed capacities", u)
			return
		}

		// the flow of an arc is the negation of its sister's, so the outgoing list alone gives
		// the net outflow of u.
		var net float64
		scale := math.Abs(float64(n.GetSourceCap())) + math.Abs(float64(n.GetSinkCap()))
		g.ForEachArcOf(u, func(a da.Index, arc *da.Arc[T]) {
			net += float64(arc.GetFlow())
			scale += math.Abs(float64(arc.GetCapacity()))
		})

		if !almostEqual(float64(fromSource), float64(toSink)+net, scale) {
			err = fmt.Errorf("node %d: inflow %v from source, outflow %v to sink, net arc outflow %v",
				u, fromSource, toSink, net)
		}
	})
	return err
}

func almostEqual(a, b, scale float64) bool {
	return math.Abs(a-b) <= FLOW_TOLERANCE*math.Max(1, scale)
}
