package segmentation

import (
	"context"
	"errors"
	"testing"

	da "github.com/lintang-b-s/graphcut/pkg/datastructure"
	"github.com/lintang-b-s/graphcut/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainProblem(length int, bottleneck float64) *Problem {
	p := &Problem{
		SourceWeights:   make([]float64, length),
		SinkWeights:     make([]float64, length),
		NeighborIndices: make([][]float64, length),
		NeighborWeights: make([][]float64, length),
	}
	p.SourceWeights[0] = 100
	p.SinkWeights[length-1] = 100
	for i := 0; i < length; i++ {
		p.NeighborIndices[i] = []float64{0}
		p.NeighborWeights[i] = []float64{0}
		if i > 0 {
			p.NeighborIndices[i][0] = float64(i) // 1-based index of node i-1
			p.NeighborWeights[i][0] = 50
		}
	}
	p.NeighborWeights[length/2][0] = bottleneck
	return p
}

func TestSolveBatch(t *testing.T) {
	problems := make([]*Problem, 20)
	for i := range problems {
		problems[i] = chainProblem(3+i, float64(i+1))
	}

	results, err := SolveBatch(context.Background(), problems, 4, nil)
	require.NoError(t, err)
	require.Len(t, results, len(problems))
	for i, res := range results {
		assert.Equal(t, float64(i+1), res.Energy, "problem %d", i)
		assert.Len(t, res.Labels, 3+i)
	}
}

func TestSolveBatchFirstError(t *testing.T) {
	bad := chainProblem(4, 1)
	bad.NeighborIndices[2][0] = 9

	problems := []*Problem{chainProblem(4, 1), bad, chainProblem(5, 2)}
	_, err := SolveBatch(context.Background(), problems, 2, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, da.ErrInvalidEdge))
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
	assert.Contains(t, err.Error(), "problem 1")
}

func TestSolveBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SolveBatch(ctx, []*Problem{chainProblem(4, 1)}, 1, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
