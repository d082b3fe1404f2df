package main

import (
	"context"
	"net/http"
	"strings"

	"estate/internal/domain/expenses"
	"estate/internal/params"
)

func parseExpenseFilter(r *http.Request) (expenses.Filter, error) {
	buildingID, err := parseInt64Query(r, "buildingId")
	if err != nil {
		return expenses.Filter{}, err
	}
	apartmentID, err := parseInt64Query(r, "apartmentId")
	if err != nil {
		return expenses.Filter{}, err
	}
	return expenses.Filter{
		BuildingID:  buildingID,
		ApartmentID: apartmentID,
		Category:    strings.TrimSpace(r.URL.Query().Get("category")),
	}, nil
}

// listExpensesHandler godoc
//
//	@Summary	Lists expenses
//	@Tags		expenses
//	@Produce	json
//	@Param		page		query		int		false	"Page (default 1)"
//	@Param		limit		query		int		false	"Page size (default 10, max 100)"
//	@Param		sortBy		query		string	false	"created_at, updated_at, amount, category"
//	@Param		order		query		string	false	"asc or desc"
//	@Param		searchWord	query		string	false	"Matches description or category"
//	@Param		buildingId	query		int		false	"Only expenses of this building"
//	@Param		apartmentId	query		int		false	"Only expenses of this apartment"
//	@Param		category	query		string	false	"Exact category"
//	@Success	200			{object}	listResponse[expenses.Expense]
//	@Security	ApiKeyAuth
//	@Router		/expenses [get]
func (app *application) listExpensesHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), expenses.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parseExpenseFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Expenses.List(r.Context(), q, f)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	q.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, listResponse[expenses.Expense]{Items: items, Pagination: q.Pagination})
}

func (app *application) exportExpensesHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), expenses.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parseExpenseFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	all, err := collectAll(r.Context(), q, func(ctx context.Context, q params.ListQuery) ([]expenses.Expense, int, error) {
		return app.store.Expenses.List(ctx, q, f)
	})
	if err != nil {
		app.exportErrorResponse(w, r, err)
		return
	}

	header := []string{"id", "description", "amount", "category", "building_id", "apartment_id", "created_at"}
	writeCSV(app, w, r, "expenses", header, all, func(e expenses.Expense) []string {
		return []string{
			csvInt(e.ID), e.Description, csvMoney(e.Amount), e.Category,
			csvOptInt(e.BuildingID), csvOptInt(e.ApartmentID), csvTime(e.CreatedAt),
		}
	})
}

func (app *application) getExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "expenseID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	expense, err := app.store.Expenses.GetByID(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, expense)
}

// createExpenseHandler godoc
//
//	@Summary	Records an expense
//	@Tags		expenses
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		expenses.CreateExpenseRequest	true	"Expense"
//	@Success	201		{object}	expenses.Expense
//	@Failure	400		{object}	error
//	@Security	ApiKeyAuth
//	@Router		/expenses [post]
func (app *application) createExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var payload expenses.CreateExpenseRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	expense, err := app.store.Expenses.Create(r.Context(), payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, expense)
}

func (app *application) updateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "expenseID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload expenses.UpdateExpenseRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	expense, err := app.store.Expenses.Update(r.Context(), id, payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, expense)
}

func (app *application) deleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "expenseID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Expenses.Delete(r.Context(), id); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
