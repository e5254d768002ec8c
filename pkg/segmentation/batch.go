package segmentation

import (
	"context"

	"github.com/lintang-b-s/graphcut/pkg/concurrent"
	"github.com/lintang-b-s/graphcut/pkg/logger"
	"github.com/lintang-b-s/graphcut/pkg/util"
	"go.uber.org/zap"
)

type batchJob struct {
	index   int
	problem *Problem
}

type batchResult struct {
	index  int
	result *Result
	err    error
}

// SolveBatch solves independent problems on a pool of workers. results[i] belongs to
// problems[i]. the first failing problem (by position) fails the whole batch; a done ctx stops
// handing out problems and returns ctx.Err().
func SolveBatch(ctx context.Context, problems []*Problem, workers int, log *zap.Logger) ([]*Result, error) {
	log = logger.OrNop(log)

	wp := concurrent.NewWorkerPool[batchJob, batchResult](workers, len(problems))
	for i, p := range problems {
		wp.AddJob(batchJob{index: i, problem: p})
	}
	wp.Close()

	wp.Start(ctx, func(ctx context.Context, job batchJob) batchResult {
		res, err := Solve(job.problem, log)
		return batchResult{index: job.index, result: res, err: err}
	})
	wp.Wait()

	results := make([]*Result, len(problems))
	errs := make([]error, len(problems))
	for res := range wp.CollectResults() {
		results[res.index] = res.result
		errs[res.index] = res.err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrorCode(err), "problem %d of batch", i)
		}
	}

	log.Debug("batch solved", zap.Int("problems", len(problems)), zap.Int("workers", wp.NumWorkers()))
	return results, nil
}
