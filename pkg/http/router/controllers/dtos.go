package controllers

import (
	"github.com/lintang-b-s/graphcut/pkg/maxflow"
	"github.com/lintang-b-s/graphcut/pkg/segmentation"
)

type segmentRequest struct {
	SourceWeights   []float64   `json:"source_weights" validate:"required,dive,gte=0"`
	SinkWeights     []float64   `json:"sink_weights" validate:"required,dive,gte=0"`
	NeighborIndices [][]float64 `json:"neighbor_indices" validate:"required"`
	NeighborWeights [][]float64 `json:"neighbor_weights" validate:"required,dive,dive,gte=0"`
}

func (req *segmentRequest) toProblem() *segmentation.Problem {
	return &segmentation.Problem{
		SourceWeights:   req.SourceWeights,
		SinkWeights:     req.SinkWeights,
		NeighborIndices: req.NeighborIndices,
		NeighborWeights: req.NeighborWeights,
	}
}

type segmentBatchRequest struct {
	Problems []segmentRequest `json:"problems" validate:"required,min=1,max=64,dive"`
}

type segmentResponse struct {
	Labels []int         `json:"labels"`
	Energy float64       `json:"energy"`
	Stats  maxflow.Stats `json:"stats"`
}

func NewSegmentResponse(res *segmentation.Result) segmentResponse {
	labels := make([]int, len(res.Labels))
	for i, l := range res.Labels {
		labels[i] = int(l)
	}
	return segmentResponse{
		Labels: labels,
		Energy: res.Energy,
		Stats:  res.Stats,
	}
}

type segmentBatchResponse struct {
	Results []segmentResponse `json:"results"`
}

func NewSegmentBatchResponse(results []*segmentation.Result) segmentBatchResponse {
	resp := segmentBatchResponse{Results: make([]segmentResponse, len(results))}
	for i, res := range results {
		resp.Results[i] = NewSegmentResponse(res)
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
