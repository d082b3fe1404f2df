package main

import (
	"context"
	"net/http"
	"strings"

	"estate/internal/domain/bookingstatus"
	"estate/internal/params"
)

// listBookingStatusesHandler godoc
//
//	@Summary	Lists booking statuses
//	@Tags		bookingstatus
//	@Produce	json
//	@Success	200	{object}	listResponse[bookingstatus.BookingStatus]
//	@Security	ApiKeyAuth
//	@Router		/bookingstatus [get]
func (app *application) listBookingStatusesHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), bookingstatus.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.BookingStatus.List(r.Context(), q)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	q.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, listResponse[bookingstatus.BookingStatus]{Items: items, Pagination: q.Pagination})
}

func (app *application) exportBookingStatusesHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), bookingstatus.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	all, err := collectAll(r.Context(), q, func(ctx context.Context, q params.ListQuery) ([]bookingstatus.BookingStatus, int, error) {
		return app.store.BookingStatus.List(ctx, q)
	})
	if err != nil {
		app.exportErrorResponse(w, r, err)
		return
	}

	writeCSV(app, w, r, "bookingstatus", []string{"id", "status", "created_at"}, all, func(s bookingstatus.BookingStatus) []string {
		return []string{csvInt(s.ID), s.Status, csvTime(s.CreatedAt)}
	})
}

// getBookingStatusHandler godoc
//
//	@Summary	Fetches a booking status
//	@Tags		bookingstatus
//	@Produce	json
//	@Param		statusID	path		int	true	"Status ID"
//	@Success	200			{object}	bookingstatus.BookingStatus
//	@Failure	404			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/bookingstatus/{statusID} [get]
func (app *application) getBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "statusID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	status, err := app.store.BookingStatus.GetByID(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, status)
}

// createBookingStatusHandler godoc
//
//	@Summary	Creates a booking status
//	@Tags		bookingstatus
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		bookingstatus.StatusRequest	true	"Status"
//	@Success	201		{object}	bookingstatus.BookingStatus
//	@Failure	409		{object}	error	"Status already exists"
//	@Security	ApiKeyAuth
//	@Router		/bookingstatus [post]
func (app *application) createBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	var payload bookingstatus.StatusRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	status, err := app.store.BookingStatus.Create(r.Context(), strings.TrimSpace(payload.Status))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, status)
}

// updateBookingStatusHandler godoc
//
//	@Summary	Renames a booking status
//	@Tags		bookingstatus
//	@Accept		json
//	@Produce	json
//	@Param		statusID	path		int							true	"Status ID"
//	@Param		payload		body		bookingstatus.StatusRequest	true	"Status"
//	@Success	200			{object}	bookingstatus.BookingStatus
//	@Security	ApiKeyAuth
//	@Router		/bookingstatus/{statusID} [put]
func (app *application) updateBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "statusID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload bookingstatus.StatusRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	status, err := app.store.BookingStatus.Update(r.Context(), id, strings.TrimSpace(payload.Status))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, status)
}

// deleteBookingStatusHandler godoc
//
//	@Summary	Deletes a booking status
//	@Tags		bookingstatus
//	@Produce	json
//	@Param		statusID	path		int	true	"Status ID"
//	@Success	200			{object}	bookingstatus.BookingStatus	"The deleted status"
//	@Security	ApiKeyAuth
//	@Router		/bookingstatus/{statusID} [delete]
func (app *application) deleteBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "statusID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	status, err := app.store.BookingStatus.Delete(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, status)
}
