package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/graphcut/pkg/logger"
	"github.com/lintang-b-s/graphcut/pkg/metrics"
	"github.com/lintang-b-s/graphcut/pkg/segmentation"
	"github.com/lintang-b-s/graphcut/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrProblemTooLarge = errors.New("problem exceeds the node limit")
)

type SegmentationService struct {
	log          *zap.Logger
	met          *metrics.Metric
	maxNodes     int
	batchWorkers int
}

func NewSegmentationService(log *zap.Logger, met *metrics.Metric, maxNodes, batchWorkers int) *SegmentationService {
	return &SegmentationService{
		log:          logger.OrNop(log),
		met:          met,
		maxNodes:     maxNodes,
		batchWorkers: batchWorkers,
	}
}

func (ss *SegmentationService) checkSize(p *segmentation.Problem) error {
	if ss.maxNodes > 0 && p.NumNodes() > ss.maxNodes {
		return util.WrapErrorf(ErrProblemTooLarge, util.ErrBadParamInput,
			"%d nodes, limit is %d", p.NumNodes(), ss.maxNodes)
	}
	return nil
}

func (ss *SegmentationService) Segment(ctx context.Context, p *segmentation.Problem) (*segmentation.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ss.checkSize(p); err != nil {
		ss.observe(p, nil, err, 0)
		return nil, err
	}

	start := time.Now()
	res, err := segmentation.Solve(p, ss.log)
	ss.observe(p, res, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (ss *SegmentationService) SegmentBatch(ctx context.Context, problems []*segmentation.Problem) ([]*segmentation.Result, error) {
	for i, p := range problems {
		if err := ss.checkSize(p); err != nil {
			ss.observe(p, nil, err, 0)
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "problem %d of batch", i)
		}
	}

	start := time.Now()
	results, err := segmentation.SolveBatch(ctx, problems, ss.batchWorkers, ss.log)
	if err != nil {
		ss.observe(nil, nil, err, 0)
		return nil, err
	}

	took := time.Since(start)
	for i, res := range results {
		ss.observe(problems[i], res, nil, took/time.Duration(len(results)))
	}
	ss.log.Info("batch segmented", zap.Int("problems", len(problems)), zap.Duration("took", took))
	return results, nil
}

// observe records one problem in the metrics. batch problems share the batch wall time evenly.
func (ss *SegmentationService) observe(p *segmentation.Problem, res *segmentation.Result, err error, took time.Duration) {
	if ss.met == nil {
		return
	}
	switch {
	case err == nil:
		ss.met.ObserveSolve(metrics.OUTCOME_OK, took, p.NumNodes(), p.NumNodes()*p.NumDirections(),
			res.Stats.Augmentations)
	case errors.Is(util.ErrorCode(err), util.ErrBadParamInput):
		ss.met.ObserveSolve(metrics.OUTCOME_REJECTED, took, 0, 0, 0)
	default:
		ss.met.ObserveSolve(metrics.OUTCOME_FAILED, took, 0, 0, 0)
	}
}
