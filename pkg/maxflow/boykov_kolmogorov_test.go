package maxflow

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/graphcut/pkg"
	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type testEdge struct {
	u, v         da.Index
	capUV, capVU int64
}

func buildGraph(t *testing.T, sourceCaps, sinkCaps []int64, edges []testEdge) *da.Graph[int64] {
	t.Helper()
	g := da.NewGraph[int64](len(sourceCaps), len(edges))
	_, err := g.AddNodes(len(sourceCaps))
	require.NoError(t, err)
	for u := range sourceCaps {
		require.NoError(t, g.AddTerminalWeights(da.Index(u), sourceCaps[u], sinkCaps[u]))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.u, e.v, e.capUV, e.capVU))
	}
	return g
}

// randomGraph builds a graph with random terminal weights and roughly density*n edges.
func randomGraph[T da.Capacity](rd *rand.Rand, n, density int, maxCap float64) *da.Graph[T] {
	g := da.NewGraph[T](n, n*density)
	g.AddNodes(n)
	for u := 0; u < n; u++ {
		switch rd.Intn(3) {
		case 0:
			g.AddTerminalWeights(da.Index(u), T(rd.Float64()*maxCap), 0)
		case 1:
			g.AddTerminalWeights(da.Index(u), 0, T(rd.Float64()*maxCap))
		default:
			g.AddTerminalWeights(da.Index(u), T(rd.Float64()*maxCap), T(rd.Float64()*maxCap))
		}
	}
	for k := 0; k < n*density; k++ {
		u, v := da.Index(rd.Intn(n)), da.Index(rd.Intn(n))
		if u == v {
			continue
		}
		g.AddEdge(u, v, T(rd.Float64()*maxCap), T(rd.Float64()*maxCap))
	}
	return g
}

func TestBKMaxFlowScenarios(t *testing.T) {
	testCases := []struct {
		name         string
		sourceCaps   []int64
		sinkCaps     []int64
		edges        []testEdge
		expectedFlow int64
		expectedSeg  []pkg.Segment
	}{
		{
			name:         "edge limited two nodes",
			sourceCaps:   []int64{10, 0},
			sinkCaps:     []int64{0, 10},
			edges:        []testEdge{{0, 1, 5, 5}},
			expectedFlow: 5,
			expectedSeg:  []pkg.Segment{pkg.SOURCE, pkg.SINK},
		},
		{
			name:         "terminal limited two nodes end free",
			sourceCaps:   []int64{10, 0},
			sinkCaps:     []int64{0, 10},
			edges:        []testEdge{{0, 1, 100, 100}},
			expectedFlow: 10,
			expectedSeg:  []pkg.Segment{pkg.SOURCE, pkg.SOURCE},
		},
		{
			name:         "chain bottleneck",
			sourceCaps:   []int64{5, 0, 0},
			sinkCaps:     []int64{0, 0, 5},
			edges:        []testEdge{{0, 1, 3, 3}, {1, 2, 3, 3}},
			expectedFlow: 3,
		},
		{
			name:         "disconnected node gets the default segment",
			sourceCaps:   []int64{10, 0, 0},
			sinkCaps:     []int64{0, 10, 0},
			edges:        []testEdge{{0, 1, 5, 5}},
			expectedFlow: 5,
			expectedSeg:  []pkg.Segment{pkg.SOURCE, pkg.SINK, pkg.DEFAULT_SEGMENT},
		},
		{
			// 3 units cancel at init, the remaining 2 keep the node rooted in the source tree.
			// the sink side would cut 5.
			name:         "single node with both terminals",
			sourceCaps:   []int64{5},
			sinkCaps:     []int64{3},
			expectedFlow: 3,
			expectedSeg:  []pkg.Segment{pkg.SOURCE},
		},
		{
			name:         "empty graph",
			expectedFlow: 0,
		},
		{
			name:         "parallel edges add up",
			sourceCaps:   []int64{10, 0},
			sinkCaps:     []int64{0, 10},
			edges:        []testEdge{{0, 1, 2, 0}, {1, 0, 0, 3}},
			expectedFlow: 5,
			expectedSeg:  []pkg.Segment{pkg.SOURCE, pkg.SINK},
		},
		{
			name:         "flow only in one direction",
			sourceCaps:   []int64{10, 0},
			sinkCaps:     []int64{0, 10},
			edges:        []testEdge{{0, 1, 0, 7}},
			expectedFlow: 0,
		},
		{
			name:       "two disjoint paths share a sink node",
			sourceCaps: []int64{4, 6, 0, 0},
			sinkCaps:   []int64{0, 0, 0, 20},
			edges: []testEdge{
				{0, 2, 10, 0},
				{1, 2, 10, 0},
				{2, 3, 7, 0},
				{1, 3, 2, 0},
			},
			expectedFlow: 9,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.sourceCaps, tt.sinkCaps, tt.edges)
			bk := NewBKMaxFlow(g, nil)

			flow, err := bk.ComputeMaxflowMinCut()
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFlow, flow)

			for u, want := range tt.expectedSeg {
				seg, err := bk.WhatSegment(da.Index(u))
				require.NoError(t, err)
				assert.Equal(t, want, seg, "segment of node %d", u)
			}

			cut, err := bk.GetMinCut()
			require.NoError(t, err)
			assert.Equal(t, flow, CutCapacity(g, cut))
			assert.NoError(t, CheckFlowConservation(g))
		})
	}
}

func TestBKMaxFlowMisuse(t *testing.T) {
	g := buildGraph(t, []int64{1, 0}, []int64{0, 1}, []testEdge{{0, 1, 1, 1}})
	bk := NewBKMaxFlow(g, nil)
	assert.False(t, bk.IsSolved())

	_, err := bk.WhatSegment(0)
	assert.True(t, errors.Is(err, ErrNotSolved))
	_, err = bk.GetMinCut()
	assert.True(t, errors.Is(err, ErrNotSolved))

	_, err = bk.ComputeMaxflowMinCut()
	require.NoError(t, err)
	assert.True(t, bk.IsSolved())

	_, err = bk.ComputeMaxflowMinCut()
	assert.True(t, errors.Is(err, da.ErrGraphSolved))
	_, err = NewBKMaxFlow(g, nil).ComputeMaxflowMinCut()
	assert.True(t, errors.Is(err, da.ErrGraphSolved))

	_, err = bk.WhatSegment(2)
	assert.True(t, errors.Is(err, da.ErrInvalidNode))

	assert.True(t, errors.Is(g.AddEdge(0, 1, 1, 1), da.ErrGraphSolved))
	assert.True(t, errors.Is(g.AddTerminalWeights(0, 1, 1), da.ErrGraphSolved))
}

func TestBKMaxFlowQueryIdempotent(t *testing.T) {
	rd := rand.New(rand.NewSource(7))
	g := randomGraph[int64](rd, 200, 4, 50)
	bk := NewBKMaxFlow(g, nil)
	_, err := bk.ComputeMaxflowMinCut()
	require.NoError(t, err)

	first, err := bk.GetMinCut()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := bk.GetMinCut()
		require.NoError(t, err)
		assert.Equal(t, first.GetFlags(), again.GetFlags())
		for u := 0; u < g.NumberOfNodes(); u++ {
			seg, err := bk.WhatSegment(da.Index(u))
			require.NoError(t, err)
			assert.Equal(t, first.GetFlag(da.Index(u)), seg == pkg.SINK)
		}
	}
}

func TestBKMaxFlowSymmetricEdgeCountedOnce(t *testing.T) {
	// both nodes are pinned to their terminal, so the cut must separate them through the edge
	g := buildGraph(t, []int64{100, 0}, []int64{0, 100}, []testEdge{{0, 1, 7, 7}})
	bk := NewBKMaxFlow(g, nil)
	flow, err := bk.ComputeMaxflowMinCut()
	require.NoError(t, err)
	assert.Equal(t, int64(7), flow)

	cut, err := bk.GetMinCut()
	require.NoError(t, err)
	assert.Equal(t, 1, cut.GetNumNodesInSinkSide())
	assert.Equal(t, int64(7), CutCapacity(g, cut))
}

func TestBKMaxFlowAgainstDinic(t *testing.T) {
	rd := rand.New(rand.NewSource(42))
	for i := 0; i < 60; i++ {
		n := 2 + rd.Intn(150)
		g := randomGraph[int64](rd, n, 1+rd.Intn(5), 100)

		expected := NewDinicMaxFlow(g).ComputeMaxflowMinCut()

		bk := NewBKMaxFlow(g, nil)
		flow, err := bk.ComputeMaxflowMinCut()
		require.NoError(t, err)
		require.Equal(t, expected.GetFlow(), flow, "instance %d with %d nodes", i, n)

		cut, err := bk.GetMinCut()
		require.NoError(t, err)
		require.Equal(t, flow, CutCapacity(g, cut), "instance %d", i)
		require.NoError(t, CheckFlowConservation(g), "instance %d", i)
	}
}

func TestBKMaxFlowFloatCapacities(t *testing.T) {
	rd := rand.New(rand.NewSource(3))
	for i := 0; i < 30; i++ {
		g := randomGraph[float64](rd, 2+rd.Intn(100), 3, 10)

		expected := NewDinicMaxFlow(g).ComputeMaxflowMinCut().GetFlow()

		bk := NewBKMaxFlow(g, nil)
		flow, err := bk.ComputeMaxflowMinCut()
		require.NoError(t, err)
		assert.InDelta(t, expected, flow, 1e-6, "instance %d", i)

		cut, err := bk.GetMinCut()
		require.NoError(t, err)
		assert.InDelta(t, flow, CutCapacity(g, cut), 1e-6, "instance %d", i)
		assert.NoError(t, CheckFlowConservation(g), "instance %d", i)
	}
}

func TestBKMaxFlowMonotone(t *testing.T) {
	rd := rand.New(rand.NewSource(11))
	base := randomGraph[int64](rd, 80, 3, 30)

	baseFlow, err := NewBKMaxFlow(base.Clone(), nil).ComputeMaxflowMinCut()
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		g := base.Clone()
		u := da.Index(rd.Intn(g.NumberOfNodes()))
		switch rd.Intn(3) {
		case 0:
			require.NoError(t, g.AddTerminalWeights(u, int64(1+rd.Intn(20)), 0))
		case 1:
			require.NoError(t, g.AddTerminalWeights(u, 0, int64(1+rd.Intn(20))))
		default:
			v := da.Index(rd.Intn(g.NumberOfNodes()))
			if u == v {
				continue
			}
			require.NoError(t, g.AddEdge(u, v, int64(1+rd.Intn(20)), 0))
		}

		flow, err := NewBKMaxFlow(g, nil).ComputeMaxflowMinCut()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, flow, baseFlow)
	}
}

func TestBKMaxFlowGrid(t *testing.T) {
	// 4-connected grid, left column tied to the source and right column to the sink.
	// every row is an independent path whose bottleneck is the weakest horizontal edge.
	const width, height = 30, 20
	rd := rand.New(rand.NewSource(5))

	g := da.NewFixedGraph[int64](width*height, 2*width*height)
	_, err := g.AddNodes(width * height)
	require.NoError(t, err)

	id := func(x, y int) da.Index { return da.Index(y*width + x) }
	var expected int64
	for y := 0; y < height; y++ {
		require.NoError(t, g.AddTerminalWeights(id(0, y), 1000, 0))
		require.NoError(t, g.AddTerminalWeights(id(width-1, y), 0, 1000))

		rowMin := int64(1000)
		for x := 0; x+1 < width; x++ {
			c := int64(1 + rd.Intn(50))
			rowMin = min(rowMin, c)
			require.NoError(t, g.AddEdge(id(x, y), id(x+1, y), c, c))
		}
		expected += rowMin

		if y+1 < height {
			for x := 0; x < width; x++ {
				require.NoError(t, g.AddEdge(id(x, y), id(x, y+1), 0, 0))
			}
		}
	}

	flow, err := NewBKMaxFlow(g, nil).ComputeMaxflowMinCut()
	require.NoError(t, err)
	assert.Equal(t, expected, flow)
}

func BenchmarkBKMaxFlowRandom(b *testing.B) {
	rd := rand.New(rand.NewSource(1))
	base := randomGraph[int64](rd, 5000, 4, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := base.Clone()
		NewBKMaxFlow(g, nil).ComputeMaxflowMinCut()
	}
}

func BenchmarkDinicMaxFlowRandom(b *testing.B) {
	rd := rand.New(rand.NewSource(1))
	base := randomGraph[int64](rd, 5000, 4, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewDinicMaxFlow(base).ComputeMaxflowMinCut()
	}
}
