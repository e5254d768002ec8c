package segmentation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridNeighbors(t *testing.T) {
	testCases := []struct {
		name            string
		width, height   int
		connectivity    int
		node            int
		expectedIndices []float64
	}{
		{
			// 3x2 grid, column-major: x=0 -> nodes 0,1; x=1 -> 2,3; x=2 -> 4,5
			name:            "corner with 4 neighbours",
			width:           3,
			height:          2,
			connectivity:    4,
			node:            0,
			expectedIndices: []float64{0, 2, 0, 3},
		},
		{
			name:            "middle column with 4 neighbours",
			width:           3,
			height:          2,
			connectivity:    4,
			node:            3,
			expectedIndices: []float64{3, 0, 2, 6},
		},
		{
			name:            "middle column with 8 neighbours",
			width:           3,
			height:          2,
			connectivity:    8,
			node:            2,
			expectedIndices: []float64{0, 4, 1, 5, 0, 0, 2, 6},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			indices, weights, err := GridNeighbors(tt.width, tt.height, tt.connectivity, func(u, v int) float64 {
				return float64(10*u + v)
			})
			require.NoError(t, err)
			require.Len(t, indices, tt.width*tt.height)
			assert.Equal(t, tt.expectedIndices, indices[tt.node])

			for s, idx := range indices[tt.node] {
				if idx == 0 {
					assert.Zero(t, weights[tt.node][s])
					continue
				}
				assert.Equal(t, float64(10*tt.node+int(idx)-1), weights[tt.node][s])
			}
		})
	}
}

func TestGridNeighborsErrors(t *testing.T) {
	one := func(u, v int) float64 { return 1 }

	_, _, err := GridNeighbors(3, 3, 6, one)
	assert.True(t, errors.Is(err, ErrInvalidConnectivity))

	_, _, err = GridNeighbors(0, 3, 4, one)
	assert.True(t, errors.Is(err, ErrInvalidGrid))

	_, err = NewGridProblem(2, 2, 4, []float64{1, 2, 3}, []float64{1, 2, 3}, one)
	var shapeErr *ArgumentShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestGridProblemAddsEachPairOnce(t *testing.T) {
	const width, height = 5, 4
	n := width * height
	p, err := NewGridProblem(width, height, 4, make([]float64, n), make([]float64, n), func(u, v int) float64 {
		return 1
	})
	require.NoError(t, err)

	g, err := BuildGraph(p)
	require.NoError(t, err)
	assert.Equal(t, (width-1)*height+width*(height-1), g.NumberOfEdges())
}
