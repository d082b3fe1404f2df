package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"estate/internal/domain/buildings"
	"estate/internal/params"
)

const maxImageSize = 5 << 20 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func parseBuildingFilter(r *http.Request) (buildings.Filter, error) {
	lawFirmID, err := parseInt64Query(r, "lawFirmId")
	if err != nil {
		return buildings.Filter{}, err
	}
	return buildings.Filter{
		LawFirmID: lawFirmID,
		ManagerID: r.URL.Query().Get("managerId"),
	}, nil
}

// listBuildingsHandler godoc
//
//	@Summary		Lists buildings
//	@Description	Supports the common list query plus lawFirmId and managerId filters.
//	@Tags			buildings
//	@Produce		json
//	@Param			page		query		int		false	"Page (default 1)"
//	@Param			limit		query		int		false	"Page size (default 10, max 100)"
//	@Param			sortBy		query		string	false	"created_at, updated_at, name, address"
//	@Param			order		query		string	false	"asc or desc"
//	@Param			searchWord	query		string	false	"Matches name or address"
//	@Param			fromDate	query		string	false	"created_at lower bound"
//	@Param			toDate		query		string	false	"updated_at upper bound"
//	@Param			lawFirmId	query		int		false	"Only buildings of this law firm"
//	@Param			managerId	query		string	false	"Only buildings managed by this user"
//	@Success		200			{object}	listResponse[buildings.Building]
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/buildings [get]
func (app *application) listBuildingsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), buildings.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parseBuildingFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Buildings.List(r.Context(), q, f)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	q.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, listResponse[buildings.Building]{Items: items, Pagination: q.Pagination})
}

// exportBuildingsHandler godoc
//
//	@Summary	Exports buildings as CSV
//	@Tags		buildings
//	@Produce	text/csv
//	@Success	200	{file}	file
//	@Security	ApiKeyAuth
//	@Router		/buildings/export.csv [get]
func (app *application) exportBuildingsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), buildings.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parseBuildingFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	all, err := collectAll(r.Context(), q, func(ctx context.Context, q params.ListQuery) ([]buildings.Building, int, error) {
		return app.store.Buildings.List(ctx, q, f)
	})
	if err != nil {
		app.exportErrorResponse(w, r, err)
		return
	}

	header := []string{"id", "name", "address", "law_firm_id", "manager_id", "image_url", "created_at"}
	writeCSV(app, w, r, "buildings", header, all, func(b buildings.Building) []string {
		return []string{
			csvInt(b.ID), b.Name, b.Address, csvOptInt(b.LawFirmID),
			csvOptString(b.ManagerID), csvOptString(b.ImageURL), csvTime(b.CreatedAt),
		}
	})
}

// getBuildingHandler godoc
//
//	@Summary	Fetches a building
//	@Tags		buildings
//	@Produce	json
//	@Param		buildingID	path		int	true	"Building ID"
//	@Success	200			{object}	buildings.Building
//	@Failure	400			{object}	error
//	@Failure	404			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/buildings/{buildingID} [get]
func (app *application) getBuildingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "buildingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	building, err := app.store.Buildings.GetByID(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, building)
}

// createBuildingHandler godoc
//
//	@Summary	Creates a building
//	@Tags		buildings
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		buildings.CreateBuildingRequest	true	"Building"
//	@Success	201		{object}	buildings.Building
//	@Failure	400		{object}	error	"Invalid payload or unknown law firm / manager"
//	@Security	ApiKeyAuth
//	@Router		/buildings [post]
func (app *application) createBuildingHandler(w http.ResponseWriter, r *http.Request) {
	var payload buildings.CreateBuildingRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	building, err := app.store.Buildings.Create(r.Context(), payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, building)
}

// updateBuildingHandler godoc
//
//	@Summary	Updates a building
//	@Tags		buildings
//	@Accept		json
//	@Produce	json
//	@Param		buildingID	path		int								true	"Building ID"
//	@Param		payload		body		buildings.UpdateBuildingRequest	true	"Fields to change"
//	@Success	200			{object}	buildings.Building
//	@Failure	400			{object}	error
//	@Failure	404			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/buildings/{buildingID} [put]
func (app *application) updateBuildingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "buildingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload buildings.UpdateBuildingRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	building, err := app.store.Buildings.Update(r.Context(), id, payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, building)
}

// uploadBuildingImageHandler godoc
//
//	@Summary		Uploads the building image
//	@Description	Multipart form with an "image" file (jpeg, png or webp, at most 5MB). The previous image is removed from storage.
//	@Tags			buildings
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			buildingID	path		int		true	"Building ID"
//	@Param			image		formData	file	true	"Image file"
//	@Success		200			{object}	buildings.Building
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		503			{object}	error	"Image storage not configured"
//	@Security		ApiKeyAuth
//	@Router			/buildings/{buildingID}/image [post]
func (app *application) uploadBuildingImageHandler(w http.ResponseWriter, r *http.Request) {
	if app.images == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	id, err := parseIDParam(r, "buildingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// make sure the building exists before uploading anything
	building, err := app.store.Buildings.GetByID(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1024)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		app.badRequestResponse(w, r, errors.New("image must be a multipart upload of at most 5MB"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("image file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		app.badRequestResponse(w, r, errors.New("image exceeds 5MB"))
		return
	}
	if ct := header.Header.Get("Content-Type"); !allowedImageTypes[ct] {
		app.badRequestResponse(w, r, fmt.Errorf("unsupported image type %q", ct))
		return
	}

	url, err := app.images.Upload(r.Context(), file, fmt.Sprintf("building_%d_%d", id, time.Now().UnixNano()))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	updated, err := app.store.Buildings.SetImage(r.Context(), id, url)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if building.ImageURL != nil && *building.ImageURL != url {
		old := *building.ImageURL
		app.background(func() {
			if err := app.images.Delete(context.Background(), old); err != nil {
				app.logger.Errorw("error deleting replaced building image", "building", id, "error", err)
			}
		})
	}

	app.jsonResponse(w, http.StatusOK, updated)
}

// deleteBuildingHandler godoc
//
//	@Summary	Deletes a building
//	@Tags		buildings
//	@Param		buildingID	path	int	true	"Building ID"
//	@Success	204
//	@Failure	404	{object}	error
//	@Failure	409	{object}	error	"Building still has apartments"
//	@Security	ApiKeyAuth
//	@Router		/buildings/{buildingID} [delete]
func (app *application) deleteBuildingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "buildingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Buildings.Delete(r.Context(), id); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
