package main

import (
	"net/http"
	"strconv"

	"github.com/agrodata/crianza_projection/internal/response"
	"github.com/agrodata/crianza_projection/internal/store"
)

type GetRunHistoryResponse = response.APIResponse[[]store.BatchRun]

// @Summary		Get batch run history
// @Description	Get a list of the latest batch pipeline runs.
// @Tags			Runs
// @Produce		json
// @Param			limit	query		int						false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetRunHistoryResponse	"Successfully retrieved latest runs"
// @Failure		500		{object}	response.ErrorResponse	"Failed to get run history"
// @Router			/runs/history [get]
func (app *application) handleGetRunHistory(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	limit := 10
	if limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			limit = l
		}
	}

	ctx := r.Context()
	data, err := app.store.Runs.GetLatest(ctx, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get run history: "+err.Error())
		return
	}

	resp := &GetRunHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest runs",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
