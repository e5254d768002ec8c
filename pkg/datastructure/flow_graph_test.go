package datastructure

import (
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/graphcut/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodes(t *testing.T) {
	g := NewGraph[int](2, 0)

	first, err := g.AddNodes(3)
	require.NoError(t, err)
	assert.Equal(t, Index(0), first)

	first, err = g.AddNodes(2)
	require.NoError(t, err)
	assert.Equal(t, Index(3), first)
	assert.Equal(t, 5, g.NumberOfNodes())

	g.ForEachNode(func(u Index, n *Node[int]) {
		assert.False(t, n.HasParent(), "node %d", u)
		assert.Equal(t, NO_ARC, n.GetFirstArc())
		assert.Zero(t, n.GetSourceCap())
		assert.Zero(t, n.GetSinkCap())
	})

	_, err = g.AddNodes(-1)
	assert.True(t, errors.Is(err, ErrInvalidNode))
}

func TestAddTerminalWeightsAccumulates(t *testing.T) {
	testCases := []struct {
		name              string
		calls             [][2]float64
		expectedSourceCap float64
		expectedSinkCap   float64
	}{
		{
			name:              "single call",
			calls:             [][2]float64{{4, 1}},
			expectedSourceCap: 4,
			expectedSinkCap:   1,
		},
		{
			name:              "two calls sum up",
			calls:             [][2]float64{{4, 1}, {2.5, 3}},
			expectedSourceCap: 6.5,
			expectedSinkCap:   4,
		},
		{
			name:              "zero weights change nothing",
			calls:             [][2]float64{{1, 2}, {0, 0}},
			expectedSourceCap: 1,
			expectedSinkCap:   2,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph[float64](1, 0)
			_, err := g.AddNodes(1)
			require.NoError(t, err)

			for _, c := range tt.calls {
				require.NoError(t, g.AddTerminalWeights(0, c[0], c[1]))
			}

			n := g.GetNode(0)
			assert.Equal(t, tt.expectedSourceCap, n.GetSourceCap())
			assert.Equal(t, tt.expectedSinkCap, n.GetSinkCap())
			assert.Equal(t, tt.expectedSourceCap, n.GetSourceResidual())
			assert.Equal(t, tt.expectedSinkCap, n.GetSinkResidual())
		})
	}
}

func TestAddEdgeArcPairs(t *testing.T) {
	g := NewGraph[int](3, 2)
	_, err := g.AddNodes(3)
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(0, 1, 5, 2))
	require.NoError(t, g.AddEdge(2, 0, 7, 0))
	assert.Equal(t, 4, g.NumberOfArcs())
	assert.Equal(t, 2, g.NumberOfEdges())

	for a := Index(0); a < 4; a++ {
		assert.Equal(t, a, Sister(Sister(a)))
		assert.Equal(t, g.GetArc(Sister(a)).GetHead(), g.GetArcTail(a))
	}

	assert.Equal(t, Index(1), g.GetArc(0).GetHead())
	assert.Equal(t, 5, g.GetArc(0).GetCapacity())
	assert.Equal(t, Index(0), g.GetArc(1).GetHead())
	assert.Equal(t, 2, g.GetArc(1).GetCapacity())

	// newest arc first
	var arcsOfZero []Index
	g.ForEachArcOf(0, func(a Index, arc *Arc[int]) {
		arcsOfZero = append(arcsOfZero, a)
	})
	assert.Equal(t, []Index{3, 0}, arcsOfZero)

	g.PushFlow(0, 3)
	assert.Equal(t, 2, g.GetArc(0).GetResidual())
	assert.Equal(t, 5, g.GetArc(1).GetResidual())
	assert.Equal(t, 3, g.GetArc(0).GetFlow())
	assert.Equal(t, -3, g.GetArc(1).GetFlow())
}

func TestConstructionErrors(t *testing.T) {
	g := NewGraph[float64](2, 1)
	_, err := g.AddNodes(2)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		call     func() error
		expected error
	}{
		{
			name:     "terminal weights on missing node",
			call:     func() error { return g.AddTerminalWeights(2, 1, 1) },
			expected: ErrInvalidNode,
		},
		{
			name:     "negative source weight",
			call:     func() error { return g.AddTerminalWeights(0, -1, 0) },
			expected: ErrNegativeCapacity,
		},
		{
			name:     "nan sink weight",
			call:     func() error { return g.AddTerminalWeights(0, 0, math.NaN()) },
			expected: ErrNegativeCapacity,
		},
		{
			name:     "self loop",
			call:     func() error { return g.AddEdge(1, 1, 1, 1) },
			expected: ErrInvalidEdge,
		},
		{
			name:     "edge to missing node",
			call:     func() error { return g.AddEdge(0, 5, 1, 1) },
			expected: ErrInvalidEdge,
		},
		{
			name:     "negative reverse capacity",
			call:     func() error { return g.AddEdge(0, 1, 1, -0.5) },
			expected: ErrNegativeCapacity,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
		})
	}

	// rejected calls leave no trace
	assert.Equal(t, 0, g.NumberOfArcs())
	assert.Zero(t, g.GetNode(0).GetSourceCap())
	assert.Zero(t, g.GetNode(0).GetSinkCap())
}

func TestFixedGraphCapacity(t *testing.T) {
	g := NewFixedGraph[int](2, 1)

	_, err := g.AddNodes(2)
	require.NoError(t, err)
	_, err = g.AddNodes(1)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, 2, g.NumberOfNodes())

	require.NoError(t, g.AddEdge(0, 1, 1, 1))
	err = g.AddEdge(1, 0, 1, 1)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, 1, g.NumberOfEdges())
}

func TestGrowableGraphKeepsIndices(t *testing.T) {
	g := NewGraph[int](1, 1)
	for i := 0; i < 100; i++ {
		first, err := g.AddNodes(1)
		require.NoError(t, err)
		require.Equal(t, Index(i), first)
		require.NoError(t, g.AddTerminalWeights(first, i, 0))
		if i > 0 {
			require.NoError(t, g.AddEdge(first-1, first, i, 0))
		}
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, i, g.GetNode(Index(i)).GetSourceCap())
	}
	for a := 0; a < g.NumberOfArcs(); a += 2 {
		arc := g.GetArc(Index(a))
		assert.Equal(t, arc.GetHead()-1, g.GetArcTail(Index(a)))
		assert.Equal(t, int(arc.GetHead()), arc.GetCapacity())
	}
}

func TestCloneResetsResiduals(t *testing.T) {
	g := NewGraph[int](2, 1)
	_, err := g.AddNodes(2)
	require.NoError(t, err)
	require.NoError(t, g.AddTerminalWeights(0, 4, 1))
	require.NoError(t, g.AddEdge(0, 1, 3, 3))

	g.PushFlow(0, 2)
	g.GetNode(0).PushFromSource(2)
	g.GetNode(0).SetParent(TERMINAL_ARC)
	require.True(t, g.MarkSolved())
	require.False(t, g.MarkSolved())

	cg := g.Clone()
	assert.False(t, cg.IsSolved())
	assert.Equal(t, 3, cg.GetArc(0).GetResidual())
	assert.Equal(t, 3, cg.GetArc(1).GetResidual())
	assert.Equal(t, 4, cg.GetNode(0).GetSourceResidual())
	assert.False(t, cg.GetNode(0).HasParent())

	// the copy does not share storage with the original
	require.NoError(t, cg.AddTerminalWeights(1, 0, 9))
	assert.Zero(t, g.GetNode(1).GetSinkCap())
	assert.Equal(t, 1, g.GetArc(0).GetResidual())
}
