package segmentation

import (
	"math"

	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
	"github.com/lintang-b-s/graphcut/pkg/logger"
	"github.com/lintang-b-s/graphcut/pkg/maxflow"
	"github.com/lintang-b-s/graphcut/pkg/util"
	"go.uber.org/zap"
)

type slotKind uint8

const (
	slotEmpty slotKind = iota
	slotEdge
	slotSkip
)

// neighborSlot decodes a 1-based neighbour slot of node i. indices are truncated towards zero,
// so anything below 1 is an empty slot, and a neighbour at or above i is left to the slot of
// that neighbour.
func neighborSlot(value float64, i, n int) (int, slotKind, error) {
	idx := value - 1
	switch {
	case math.IsNaN(idx):
		return 0, slotEmpty, util.WrapErrorf(da.ErrInvalidEdge, util.ErrBadParamInput,
			"neighbour index %v of node %d", value, i)
	case idx <= -1:
		return 0, slotEmpty, nil
	case idx >= float64(n):
		return 0, slotEmpty, util.WrapErrorf(da.ErrInvalidEdge, util.ErrBadParamInput,
			"illegal neighbour index %v of node %d, there are %d nodes", value, i, n)
	}

	j := int(idx)
	if j >= i {
		return j, slotSkip, nil
	}
	return j, slotEdge, nil
}

// checkNeighbors rejects out of range neighbour indices before anything is built.
func checkNeighbors(p *Problem) error {
	n := p.NumNodes()
	for i, row := range p.NeighborIndices {
		for _, value := range row {
			if _, _, err := neighborSlot(value, i, n); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildGraph validates p and constructs its flow graph: node i gets terminal weights
// (SourceWeights[i], SinkWeights[i]) and one symmetric edge per non empty slot pointing to a
// lower indexed node.
func BuildGraph(p *Problem) (*da.Graph[float64], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkNeighbors(p); err != nil {
		return nil, err
	}

	n, d := p.NumNodes(), p.NumDirections()
	g := da.NewFixedGraph[float64](n, n*d)
	if _, err := g.AddNodes(n); err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		if err := g.AddTerminalWeights(da.Index(i), p.SourceWeights[i], p.SinkWeights[i]); err != nil {
			return nil, err
		}
		for s, value := range p.NeighborIndices[i] {
			j, kind, _ := neighborSlot(value, i, n)
			if kind != slotEdge {
				continue
			}
			w := p.NeighborWeights[i][s]
			if err := g.AddEdge(da.Index(j), da.Index(i), w, w); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Solve computes the minimum energy binary labeling of p: Labels[i] is 1 if node i ends on
// the sink side, Energy is the min-cut value. nodes that are free at the end get label 0.
func Solve(p *Problem, log *zap.Logger) (*Result, error) {
	log = logger.OrNop(log)

	g, err := BuildGraph(p)
	if err != nil {
		return nil, err
	}

	bk := maxflow.NewBKMaxFlow(g, log)
	energy, err := bk.ComputeMaxflowMinCut()
	if err != nil {
		return nil, err
	}

	labels := make([]uint8, g.NumberOfNodes())
	for u := range labels {
		seg, err := bk.WhatSegment(da.Index(u))
		if err != nil {
			return nil, err
		}
		labels[u] = seg.Label()
	}

	return &Result{
		Labels: labels,
		Energy: energy,
		Stats:  bk.GetStats(),
	}, nil
}
