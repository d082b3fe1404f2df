package main

import (
	"context"
	"net/http"

	"estate/internal/domain/lawfirms"
	"estate/internal/params"
)

// listLawFirmsHandler godoc
//
//	@Summary	Lists law firms
//	@Tags		lawfirms
//	@Produce	json
//	@Param		page		query		int		false	"Page (default 1)"
//	@Param		limit		query		int		false	"Page size (default 10, max 100)"
//	@Param		sortBy		query		string	false	"created_at, updated_at, name, email"
//	@Param		order		query		string	false	"asc or desc"
//	@Param		searchWord	query		string	false	"Matches name, address, phone or email"
//	@Param		fromDate	query		string	false	"created_at lower bound"
//	@Param		toDate		query		string	false	"updated_at upper bound"
//	@Success	200			{object}	listResponse[lawfirms.LawFirm]
//	@Failure	400			{object}	error
//	@Failure	401			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/lawfirms [get]
func (app *application) listLawFirmsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), lawfirms.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.LawFirms.List(r.Context(), q)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	q.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, listResponse[lawfirms.LawFirm]{Items: items, Pagination: q.Pagination})
}

// exportLawFirmsHandler godoc
//
//	@Summary	Exports law firms as CSV
//	@Tags		lawfirms
//	@Produce	text/csv
//	@Success	200	{file}	file
//	@Security	ApiKeyAuth
//	@Router		/lawfirms/export.csv [get]
func (app *application) exportLawFirmsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), lawfirms.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	all, err := collectAll(r.Context(), q, func(ctx context.Context, q params.ListQuery) ([]lawfirms.LawFirm, int, error) {
		return app.store.LawFirms.List(ctx, q)
	})
	if err != nil {
		app.exportErrorResponse(w, r, err)
		return
	}

	header := []string{"id", "name", "email", "phone", "address", "created_at"}
	writeCSV(app, w, r, "lawfirms", header, all, func(f lawfirms.LawFirm) []string {
		return []string{csvInt(f.ID), f.Name, f.Email, f.Phone, f.Address, csvTime(f.CreatedAt)}
	})
}

// getLawFirmHandler godoc
//
//	@Summary	Fetches a law firm
//	@Tags		lawfirms
//	@Produce	json
//	@Param		lawFirmID	path		int	true	"Law firm ID"
//	@Success	200			{object}	lawfirms.LawFirm
//	@Failure	400			{object}	error
//	@Failure	404			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/lawfirms/{lawFirmID} [get]
func (app *application) getLawFirmHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "lawFirmID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	firm, err := app.store.LawFirms.GetByID(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, firm)
}

// createLawFirmHandler godoc
//
//	@Summary	Creates a law firm
//	@Tags		lawfirms
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		lawfirms.CreateLawFirmRequest	true	"Law firm"
//	@Success	201		{object}	lawfirms.LawFirm
//	@Failure	400		{object}	error
//	@Security	ApiKeyAuth
//	@Router		/lawfirms [post]
func (app *application) createLawFirmHandler(w http.ResponseWriter, r *http.Request) {
	var payload lawfirms.CreateLawFirmRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	firm, err := app.store.LawFirms.Create(r.Context(), payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, firm)
}

// updateLawFirmHandler godoc
//
//	@Summary	Updates a law firm
//	@Tags		lawfirms
//	@Accept		json
//	@Produce	json
//	@Param		lawFirmID	path		int								true	"Law firm ID"
//	@Param		payload		body		lawfirms.UpdateLawFirmRequest	true	"Fields to change"
//	@Success	200			{object}	lawfirms.LawFirm
//	@Failure	400			{object}	error
//	@Failure	404			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/lawfirms/{lawFirmID} [put]
func (app *application) updateLawFirmHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "lawFirmID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload lawfirms.UpdateLawFirmRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	firm, err := app.store.LawFirms.Update(r.Context(), id, payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, firm)
}

// deleteLawFirmHandler godoc
//
//	@Summary	Deletes a law firm
//	@Description	Buildings handled by the firm keep existing without one.
//	@Tags		lawfirms
//	@Param		lawFirmID	path	int	true	"Law firm ID"
//	@Success	204
//	@Failure	404	{object}	error
//	@Security	ApiKeyAuth
//	@Router		/lawfirms/{lawFirmID} [delete]
func (app *application) deleteLawFirmHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "lawFirmID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.LawFirms.Delete(r.Context(), id); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
