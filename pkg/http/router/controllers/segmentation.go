package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/graphcut/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/graphcut/pkg/segmentation"
	"go.uber.org/zap"
)

type segmentationAPI struct {
	segmentationService SegmentationService
	log                 *zap.Logger
	timeout             time.Duration
	validate            *validator.Validate
	trans               ut.Translator
}

func New(segmentationService SegmentationService, log *zap.Logger, timeout time.Duration) *segmentationAPI {
	validate, trans := newValidator()
	return &segmentationAPI{
		segmentationService: segmentationService,
		log:                 log,
		timeout:             timeout,
		validate:            validate,
		trans:               trans,
	}
}

func (api *segmentationAPI) Routes(group *helper.RouteGroup) {
	group.POST("/segment", api.segment)
	group.POST("/segment/batch", api.segmentBatch)
}

func (api *segmentationAPI) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if api.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), api.timeout)
}

// segment solves one labeling problem.
//
//	@Summary		binary labeling of one problem by min-cut
//	@Description	neighbor_indices are 1-based, entries <= 0 are empty slots. every edge is read from the slot of its larger endpoint.
//	@Tags			segmentation
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body		segmentRequest	true	"problem"
//	@Success		200		{object}	segmentResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		503		{object}	errorResponse
//	@Router			/segment [post]
func (api *segmentationAPI) segment(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request segmentRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	ctx, cancel := api.requestContext(r)
	defer cancel()

	res, err := api.segmentationService.Segment(ctx, request.toProblem())
	if err != nil {
		api.serviceError(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSegmentResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// segmentBatch solves independent problems concurrently; results keep the request order.
//
//	@Summary		binary labeling of up to 64 independent problems
//	@Tags			segmentation
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body		segmentBatchRequest	true	"problems"
//	@Success		200		{object}	segmentBatchResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		503		{object}	errorResponse
//	@Router			/segment/batch [post]
func (api *segmentationAPI) segmentBatch(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request segmentBatchRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	problems := make([]*segmentation.Problem, len(request.Problems))
	for i := range request.Problems {
		problems[i] = request.Problems[i].toProblem()
	}

	ctx, cancel := api.requestContext(r)
	defer cancel()

	results, err := api.segmentationService.SegmentBatch(ctx, problems)
	if err != nil {
		api.serviceError(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSegmentBatchResponse(results)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *segmentationAPI) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		api.timeoutResponse(w, r)
		return
	}
	api.getStatusCode(w, r, err)
}
