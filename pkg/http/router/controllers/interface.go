package controllers

import (
	"context"

	"github.com/lintang-b-s/graphcut/pkg/segmentation"
)

type SegmentationService interface {
	Segment(ctx context.Context, problem *segmentation.Problem) (*segmentation.Result, error)
	SegmentBatch(ctx context.Context, problems []*segmentation.Problem) ([]*segmentation.Result, error)
}
