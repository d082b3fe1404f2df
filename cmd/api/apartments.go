package main

import (
	"context"
	"net/http"
	"strconv"

	"estate/internal/domain/apartments"
	"estate/internal/params"
)

// listApartmentsHandler godoc
//
//	@Summary	Lists apartments
//	@Tags		apartments
//	@Produce	json
//	@Param		page		query		int		false	"Page (default 1)"
//	@Param		limit		query		int		false	"Page size (default 10, max 100)"
//	@Param		sortBy		query		string	false	"created_at, updated_at, name, cost, number_of_rooms"
//	@Param		order		query		string	false	"asc or desc"
//	@Param		searchWord	query		string	false	"Matches name, address or cost_by"
//	@Param		buildingId	query		int		false	"Only apartments in this building"
//	@Success	200			{object}	listResponse[apartments.Apartment]
//	@Failure	400			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/apartments [get]
func (app *application) listApartmentsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), apartments.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	buildingID, err := parseInt64Query(r, "buildingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Apartments.List(r.Context(), q, apartments.Filter{BuildingID: buildingID})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	q.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, listResponse[apartments.Apartment]{Items: items, Pagination: q.Pagination})
}

func (app *application) exportApartmentsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), apartments.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	buildingID, err := parseInt64Query(r, "buildingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f := apartments.Filter{BuildingID: buildingID}

	all, err := collectAll(r.Context(), q, func(ctx context.Context, q params.ListQuery) ([]apartments.Apartment, int, error) {
		return app.store.Apartments.List(ctx, q, f)
	})
	if err != nil {
		app.exportErrorResponse(w, r, err)
		return
	}

	header := []string{"id", "name", "cost", "cost_by", "address", "building_id", "number_of_rooms", "number_of_palours", "created_at"}
	writeCSV(app, w, r, "apartments", header, all, func(a apartments.Apartment) []string {
		return []string{
			csvInt(a.ID), a.Name, csvMoney(a.Cost), a.CostBy, a.Address, csvInt(a.BuildingID),
			strconv.Itoa(a.NumberOfRooms), strconv.Itoa(a.NumberOfPalours), csvTime(a.CreatedAt),
		}
	})
}

// getApartmentHandler godoc
//
//	@Summary	Fetches an apartment
//	@Tags		apartments
//	@Produce	json
//	@Param		apartmentID	path		int	true	"Apartment ID"
//	@Success	200			{object}	apartments.Apartment
//	@Failure	404			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/apartments/{apartmentID} [get]
func (app *application) getApartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "apartmentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	apartment, err := app.store.Apartments.GetByID(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, apartment)
}

// createApartmentHandler godoc
//
//	@Summary	Creates an apartment
//	@Tags		apartments
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		apartments.CreateApartmentRequest	true	"Apartment"
//	@Success	201		{object}	apartments.Apartment
//	@Failure	400		{object}	error	"Invalid payload or unknown building"
//	@Security	ApiKeyAuth
//	@Router		/apartments [post]
func (app *application) createApartmentHandler(w http.ResponseWriter, r *http.Request) {
	var payload apartments.CreateApartmentRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	apartment, err := app.store.Apartments.Create(r.Context(), payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, apartment)
}

// updateApartmentHandler godoc
//
//	@Summary	Updates an apartment
//	@Tags		apartments
//	@Accept		json
//	@Produce	json
//	@Param		apartmentID	path		int									true	"Apartment ID"
//	@Param		payload		body		apartments.UpdateApartmentRequest	true	"Fields to change"
//	@Success	200			{object}	apartments.Apartment
//	@Security	ApiKeyAuth
//	@Router		/apartments/{apartmentID} [put]
func (app *application) updateApartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "apartmentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload apartments.UpdateApartmentRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	apartment, err := app.store.Apartments.Update(r.Context(), id, payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, apartment)
}

// deleteApartmentHandler godoc
//
//	@Summary	Deletes an apartment
//	@Tags		apartments
//	@Param		apartmentID	path	int	true	"Apartment ID"
//	@Success	204
//	@Failure	409	{object}	error	"Apartment still has rents"
//	@Security	ApiKeyAuth
//	@Router		/apartments/{apartmentID} [delete]
func (app *application) deleteApartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "apartmentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Apartments.Delete(r.Context(), id); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
