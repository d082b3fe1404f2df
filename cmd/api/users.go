package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"estate/internal/auth"
	"estate/internal/domain/users"
	"estate/internal/params"

	"github.com/go-chi/chi/v5"
)

// updateProfilePayload is what a user may change on their own account.
type updateProfilePayload struct {
	FullName       *string `json:"full_name" validate:"omitempty,max=120"`
	Username       *string `json:"username" validate:"omitempty,alphanum,min=3,max=50"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	ContactAddress *string `json:"contact_address" validate:"omitempty,max=255"`
	State          *string `json:"state" validate:"omitempty,max=100"`
	LGA            *string `json:"lga" validate:"omitempty,max=100"`
	Country        *string `json:"country" validate:"omitempty,max=100"`
	Password       *string `json:"password" validate:"omitempty,min=8,max=72"`
}

func parseUserFilter(r *http.Request) (users.Filter, error) {
	var f users.Filter
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err := auth.ParseRole(raw)
		if err != nil {
			return f, err
		}
		f.Role = role
	}
	return f, nil
}

// listUsersHandler godoc
//
//	@Summary		Lists users
//	@Tags			users
//	@Produce		json
//	@Param			page		query		int		false	"Page (default 1)"
//	@Param			limit		query		int		false	"Page size (default 10, max 100)"
//	@Param			sortBy		query		string	false	"created_at, updated_at, full_name, email, username, role"
//	@Param			order		query		string	false	"asc or desc"
//	@Param			searchWord	query		string	false	"Matches name, email, username, phone, state or address"
//	@Param			fromDate	query		string	false	"created_at lower bound (RFC3339 or YYYY-MM-DD)"
//	@Param			toDate		query		string	false	"updated_at upper bound (RFC3339 or YYYY-MM-DD)"
//	@Param			role		query		string	false	"Only users with this role"
//	@Success		200			{object}	listResponse[users.User]
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		403			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users [get]
func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), users.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parseUserFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Users.List(r.Context(), q, f)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	q.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, listResponse[users.User]{Items: items, Pagination: q.Pagination})
}

// exportUsersHandler godoc
//
//	@Summary		Exports users as CSV
//	@Tags			users
//	@Produce		text/csv
//	@Success		200	{file}		file
//	@Failure		401	{object}	error
//	@Failure		403	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/export.csv [get]
func (app *application) exportUsersHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), users.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parseUserFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	all, err := collectAll(r.Context(), q, func(ctx context.Context, q params.ListQuery) ([]users.User, int, error) {
		return app.store.Users.List(ctx, q, f)
	})
	if err != nil {
		app.exportErrorResponse(w, r, err)
		return
	}

	header := []string{"id", "email", "full_name", "username", "phone", "contact_address", "state", "lga", "country", "role", "is_active", "created_at"}
	writeCSV(app, w, r, "users", header, all, func(u users.User) []string {
		return []string{
			u.ID, u.Email, u.FullName, u.Username, u.Phone, u.ContactAddress,
			u.State, u.LGA, u.Country, string(u.Role), strconv.FormatBool(u.IsActive), csvTime(u.CreatedAt),
		}
	})
}

// getUserHandler godoc
//
//	@Summary		Fetches a user
//	@Tags			users
//	@Produce		json
//	@Param			userID	path		string	true	"User ID (uuid)"
//	@Success		200		{object}	users.User
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/{userID} [get]
func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := app.store.Users.GetByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, user)
}

// createUserHandler godoc
//
//	@Summary		Creates a user with any role
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		users.CreateUserRequest	true	"User"
//	@Success		201		{object}	users.User
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users [post]
func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload users.CreateUserRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.createUser(r, payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, user)
}

// updateUserHandler godoc
//
//	@Summary		Updates a user
//	@Description	Only the provided fields change. Role must be a known role.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		string					true	"User ID (uuid)"
//	@Param			payload	body		users.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/{userID} [put]
func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload users.UpdateUserRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if payload.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*payload.Email))
		payload.Email = &email
	}

	user, err := app.store.Users.Update(r.Context(), chi.URLParam(r, "userID"), payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, user)
}

// deleteUserHandler godoc
//
//	@Summary		Deletes a user
//	@Tags			users
//	@Param			userID	path	string	true	"User ID (uuid)"
//	@Success		204
//	@Failure		401	{object}	error
//	@Failure		403	{object}	error
//	@Failure		404	{object}	error
//	@Failure		409	{object}	error	"User still owns rents or payments"
//	@Security		ApiKeyAuth
//	@Router			/users/{userID} [delete]
func (app *application) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Users.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getCurrentUserHandler godoc
//
//	@Summary		Fetches the caller's own account
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		401	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	principal := getPrincipalFromContext(r)

	user, err := app.store.Users.GetByID(r.Context(), principal.ID)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, user)
}

// updateCurrentUserHandler godoc
//
//	@Summary		Updates the caller's own profile
//	@Description	Role, email and activation cannot be changed here.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		updateProfilePayload	true	"Fields to change"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me [put]
func (app *application) updateCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateProfilePayload
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	principal := getPrincipalFromContext(r)

	user, err := app.store.Users.Update(r.Context(), principal.ID, users.UpdateUserRequest{
		FullName:       payload.FullName,
		Username:       payload.Username,
		Phone:          payload.Phone,
		ContactAddress: payload.ContactAddress,
		State:          payload.State,
		LGA:            payload.LGA,
		Country:        payload.Country,
		Password:       payload.Password,
	})
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, user)
}
