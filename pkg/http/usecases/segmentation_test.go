package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/graphcut/pkg/metrics"
	"github.com/lintang-b-s/graphcut/pkg/segmentation"
	"github.com/lintang-b-s/graphcut/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoNodeProblem(edgeWeight float64) *segmentation.Problem {
	return &segmentation.Problem{
		SourceWeights:   []float64{10, 0},
		SinkWeights:     []float64{0, 10},
		NeighborIndices: [][]float64{{0}, {1}},
		NeighborWeights: [][]float64{{0}, {edgeWeight}},
	}
}

func TestSegment(t *testing.T) {
	ss := NewSegmentationService(nil, metrics.NewMetric(), 10, 2)

	res, err := ss.Segment(context.Background(), twoNodeProblem(5))
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1}, res.Labels)
	assert.Equal(t, 5.0, res.Energy)

	big := &segmentation.Problem{
		SourceWeights:   make([]float64, 11),
		SinkWeights:     make([]float64, 11),
		NeighborIndices: make([][]float64, 11),
		NeighborWeights: make([][]float64, 11),
	}
	_, err = ss.Segment(context.Background(), big)
	assert.True(t, errors.Is(err, ErrProblemTooLarge))
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}

func TestSegmentCancelled(t *testing.T) {
	ss := NewSegmentationService(nil, nil, 0, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ss.Segment(ctx, twoNodeProblem(5))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSegmentBatch(t *testing.T) {
	ss := NewSegmentationService(nil, metrics.NewMetric(), 0, 3)

	problems := []*segmentation.Problem{twoNodeProblem(1), twoNodeProblem(4), twoNodeProblem(100)}
	results, err := ss.SegmentBatch(context.Background(), problems)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 1.0, results[0].Energy)
	assert.Equal(t, 4.0, results[1].Energy)
	assert.Equal(t, 10.0, results[2].Energy)
}
