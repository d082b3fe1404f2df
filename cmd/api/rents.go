package main

import (
	"context"
	"errors"
	"net/http"

	"estate/internal/auth"
	"estate/internal/domain/rents"
	"estate/internal/params"
)

const otherTenantReason = "record belongs to another tenant"

// tenantScope returns the only tenant_id a TENANT principal may see, or ""
// for every other role.
func tenantScope(p auth.Principal) string {
	if p.Role == auth.RoleTenant {
		return p.ID
	}
	return ""
}

func parseRentFilter(r *http.Request) (rents.Filter, error) {
	apartmentID, err := parseInt64Query(r, "apartmentId")
	if err != nil {
		return rents.Filter{}, err
	}
	f := rents.Filter{
		TenantID:    r.URL.Query().Get("tenantId"),
		ApartmentID: apartmentID,
	}
	if scope := tenantScope(getPrincipalFromContext(r)); scope != "" {
		f.TenantID = scope
	}
	return f, nil
}

// listRentsHandler godoc
//
//	@Summary		Lists rents
//	@Description	Tenants only ever see their own rents.
//	@Tags			rents
//	@Produce		json
//	@Param			page		query		int		false	"Page (default 1)"
//	@Param			limit		query		int		false	"Page size (default 10, max 100)"
//	@Param			sortBy		query		string	false	"created_at, updated_at, start_date, end_date, total_amount"
//	@Param			order		query		string	false	"asc or desc"
//	@Param			fromDate	query		string	false	"created_at lower bound"
//	@Param			toDate		query		string	false	"updated_at upper bound"
//	@Param			tenantId	query		string	false	"Only rents of this tenant (ignored for tenants)"
//	@Param			apartmentId	query		int		false	"Only rents of this apartment"
//	@Success		200			{object}	listResponse[rents.Rent]
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		403			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/rents [get]
func (app *application) listRentsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), rents.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parseRentFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Rents.List(r.Context(), q, f)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	q.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, listResponse[rents.Rent]{Items: items, Pagination: q.Pagination})
}

// exportRentsHandler godoc
//
//	@Summary	Exports rents as CSV
//	@Tags		rents
//	@Produce	text/csv
//	@Success	200	{file}	file
//	@Security	ApiKeyAuth
//	@Router		/rents/export.csv [get]
func (app *application) exportRentsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), rents.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parseRentFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	all, err := collectAll(r.Context(), q, func(ctx context.Context, q params.ListQuery) ([]rents.Rent, int, error) {
		return app.store.Rents.List(ctx, q, f)
	})
	if err != nil {
		app.exportErrorResponse(w, r, err)
		return
	}

	header := []string{"id", "start_date", "end_date", "total_amount", "apartment_id", "tenant_id", "created_at"}
	writeCSV(app, w, r, "rents", header, all, func(rent rents.Rent) []string {
		return []string{
			csvInt(rent.ID), csvDate(rent.StartDate), csvDate(rent.EndDate), csvMoney(rent.TotalAmount),
			csvInt(rent.ApartmentID), rent.TenantID, csvTime(rent.CreatedAt),
		}
	})
}

// getRentHandler godoc
//
//	@Summary	Fetches a rent
//	@Tags		rents
//	@Produce	json
//	@Param		rentID	path		int	true	"Rent ID"
//	@Success	200		{object}	rents.Rent
//	@Failure	403		{object}	error	"Rent of another tenant"
//	@Failure	404		{object}	error
//	@Security	ApiKeyAuth
//	@Router		/rents/{rentID} [get]
func (app *application) getRentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "rentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rent, err := app.store.Rents.GetByID(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if scope := tenantScope(getPrincipalFromContext(r)); scope != "" && rent.TenantID != scope {
		app.forbiddenResponse(w, r, otherTenantReason)
		return
	}

	app.jsonResponse(w, http.StatusOK, rent)
}

// createRentHandler godoc
//
//	@Summary	Creates a rent
//	@Tags		rents
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		rents.CreateRentRequest	true	"Rent"
//	@Success	201		{object}	rents.Rent
//	@Failure	400		{object}	error	"Invalid payload, end_date not after start_date, or unknown apartment / tenant"
//	@Security	ApiKeyAuth
//	@Router		/rents [post]
func (app *application) createRentHandler(w http.ResponseWriter, r *http.Request) {
	var payload rents.CreateRentRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rent, err := app.store.Rents.Create(r.Context(), payload)
	if err != nil {
		app.rentErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, rent)
}

// updateRentHandler godoc
//
//	@Summary		Updates a rent
//	@Description	Changing tenant_id moves the rent's recorded payments to the new tenant.
//	@Tags			rents
//	@Accept		json
//	@Produce	json
//	@Param		rentID	path		int						true	"Rent ID"
//	@Param		payload	body		rents.UpdateRentRequest	true	"Fields to change"
//	@Success	200		{object}	rents.Rent
//	@Failure	400		{object}	error
//	@Failure	404		{object}	error
//	@Security	ApiKeyAuth
//	@Router		/rents/{rentID} [put]
func (app *application) updateRentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "rentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload rents.UpdateRentRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rent, err := app.store.UpdateRent(r.Context(), id, payload)
	if err != nil {
		app.rentErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, rent)
}

// deleteRentHandler godoc
//
//	@Summary	Deletes a rent
//	@Tags		rents
//	@Param		rentID	path	int	true	"Rent ID"
//	@Success	204
//	@Failure	409	{object}	error	"Rent still has payments"
//	@Security	ApiKeyAuth
//	@Router		/rents/{rentID} [delete]
func (app *application) deleteRentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "rentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Rents.Delete(r.Context(), id); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) rentErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, rents.ErrInvalidPeriod) {
		app.badRequestResponse(w, r, err)
		return
	}
	app.storeErrorResponse(w, r, err)
}
