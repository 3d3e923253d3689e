package main

import (
	"errors"
	"net/http"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/agrodata/crianza_projection/internal/predictor"
	"github.com/agrodata/crianza_projection/internal/response"
)

type PredictResponse = response.APIResponse[*predictor.PredictionResult]
type PredictBatchResponse = response.APIResponse[[]BatchItem]

// BatchItem is one positional entry of a batch response: either the
// prediction or the reason the row was rejected, never both.
type BatchItem struct {
	Result *predictor.PredictionResult `json:"result,omitempty"`
	Error  string                      `json:"error,omitempty"`
}

// statusForPredictionError maps the validation taxonomy onto HTTP statuses:
// missing input is a bad request, values outside the model's domain are
// unprocessable, a missing model is service unavailability.
func statusForPredictionError(err error) int {
	var missing *types.MissingFieldError
	var category *types.InvalidCategoryError
	var outOfRange *types.OutOfRangeError
	var unavailable *types.EstimatorUnavailableError

	switch {
	case errors.As(err, &missing):
		return http.StatusBadRequest
	case errors.As(err, &category), errors.As(err, &outOfRange):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// @Summary		Predict daily weight gain
// @Description	Estimates the daily weight gain in grams for one rearing unit.
// @Tags			Prediction
// @Accept			json
// @Produce		json
// @Param			request	body		predictor.PredictionRequest	true	"Unit attributes"
// @Success		200		{object}	PredictResponse				"Prediction with model provenance"
// @Failure		400		{object}	response.ErrorResponse		"Missing required fields"
// @Failure		422		{object}	response.ErrorResponse		"Value outside the model's domain"
// @Failure		503		{object}	response.ErrorResponse		"No estimator loaded"
// @Router			/predict [post]
func (app *application) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictor.PredictionRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	result, err := app.predictor.Predict(req)
	if err != nil {
		writeJSONError(w, statusForPredictionError(err), err.Error())
		return
	}

	resp := &PredictResponse{
		Success: true,
		Data:    result,
		Message: "Prediction generated",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Predict daily weight gain in batch
// @Description	Estimates daily weight gain for many units. Rows are independent and the response preserves request order.
// @Tags			Prediction
// @Accept			json
// @Produce		json
// @Param			request	body		[]predictor.PredictionRequest	true	"Unit attributes, one entry per unit"
// @Success		200		{object}	PredictBatchResponse			"One entry per request, in order"
// @Failure		400		{object}	response.ErrorResponse			"Malformed payload"
// @Failure		503		{object}	response.ErrorResponse			"No estimator loaded"
// @Router			/predict/batch [post]
func (app *application) handlePredictBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []predictor.PredictionRequest
	if err := readJSON(w, r, &reqs); err != nil {
		return
	}

	results := app.predictor.PredictMany(reqs)

	items := make([]BatchItem, len(results))
	allUnavailable := len(results) > 0
	for i, res := range results {
		if res.Err != nil {
			items[i].Error = res.Err.Error()
			var unavailable *types.EstimatorUnavailableError
			if !errors.As(res.Err, &unavailable) {
				allUnavailable = false
			}
			continue
		}
		allUnavailable = false
		items[i].Result = res.Result
	}

	if allUnavailable {
		writeJSONError(w, http.StatusServiceUnavailable, items[0].Error)
		return
	}

	resp := &PredictBatchResponse{
		Success: true,
		Data:    items,
		Message: "Batch processed",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
