package main

import (
	"context"
	"errors"
	"net/http"

	"estate/internal/domain/payments"
	"estate/internal/params"
)

func parsePaymentFilter(r *http.Request) (payments.Filter, error) {
	rentID, err := parseInt64Query(r, "rentId")
	if err != nil {
		return payments.Filter{}, err
	}
	f := payments.Filter{
		TenantID: r.URL.Query().Get("tenantId"),
		RentID:   rentID,
	}
	if scope := tenantScope(getPrincipalFromContext(r)); scope != "" {
		f.TenantID = scope
	}
	return f, nil
}

// listPaymentsHandler godoc
//
//	@Summary		Lists payments
//	@Description	Tenants only ever see their own payments.
//	@Tags			payments
//	@Produce		json
//	@Param			page		query		int		false	"Page (default 1)"
//	@Param			limit		query		int		false	"Page size (default 10, max 100)"
//	@Param			sortBy		query		string	false	"created_at, updated_at, payment_date, amount_paid"
//	@Param			order		query		string	false	"asc or desc"
//	@Param			searchWord	query		string	false	"Matches reference, comment or receiving account"
//	@Param			tenantId	query		string	false	"Only payments of this tenant (ignored for tenants)"
//	@Param			rentId		query		int		false	"Only payments towards this rent"
//	@Success		200			{object}	listResponse[payments.Payment]
//	@Failure		400			{object}	error
//	@Failure		401			{object}	error
//	@Failure		403			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/payments [get]
func (app *application) listPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), payments.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parsePaymentFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Payments.List(r.Context(), q, f)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	q.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, listResponse[payments.Payment]{Items: items, Pagination: q.Pagination})
}

func (app *application) exportPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseListQuery(r.URL.Query(), payments.SortColumns...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	f, err := parsePaymentFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	all, err := collectAll(r.Context(), q, func(ctx context.Context, q params.ListQuery) ([]payments.Payment, int, error) {
		return app.store.Payments.List(ctx, q, f)
	})
	if err != nil {
		app.exportErrorResponse(w, r, err)
		return
	}

	header := []string{"id", "payment_ref", "amount_paid", "account_paid_to", "payment_date", "rent_id", "tenant_id", "comment"}
	writeCSV(app, w, r, "payments", header, all, func(p payments.Payment) []string {
		return []string{
			csvInt(p.ID), p.PaymentRef, csvMoney(p.AmountPaid), p.AccountPaidTo,
			csvTime(p.PaymentDate), csvInt(p.RentID), p.TenantID, p.Comment,
		}
	})
}

// getPaymentHandler godoc
//
//	@Summary	Fetches a payment
//	@Tags		payments
//	@Produce	json
//	@Param		paymentID	path		int	true	"Payment ID"
//	@Success	200			{object}	payments.Payment
//	@Failure	403			{object}	error	"Payment of another tenant"
//	@Failure	404			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/payments/{paymentID} [get]
func (app *application) getPaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "paymentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payment, err := app.store.Payments.GetByID(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if scope := tenantScope(getPrincipalFromContext(r)); scope != "" && payment.TenantID != scope {
		app.forbiddenResponse(w, r, otherTenantReason)
		return
	}

	app.jsonResponse(w, http.StatusOK, payment)
}

// createPaymentHandler godoc
//
//	@Summary		Records a payment against a rent
//	@Description	tenant_id defaults to the rent's tenant and must match it when given.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		payments.CreatePaymentRequest	true	"Payment"
//	@Success		201		{object}	payments.Payment
//	@Failure		400		{object}	error	"Invalid payload, unknown rent or tenant mismatch"
//	@Security		ApiKeyAuth
//	@Router			/payments [post]
func (app *application) createPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var payload payments.CreatePaymentRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payment, err := app.store.RecordPayment(r.Context(), payload)
	if err != nil {
		if errors.Is(err, payments.ErrTenantMismatch) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, payment)
}

// updatePaymentHandler godoc
//
//	@Summary	Updates a payment
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		paymentID	path		int								true	"Payment ID"
//	@Param		payload		body		payments.UpdatePaymentRequest	true	"Fields to change"
//	@Success	200			{object}	payments.Payment
//	@Security	ApiKeyAuth
//	@Router		/payments/{paymentID} [put]
func (app *application) updatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "paymentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload payments.UpdatePaymentRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payment, err := app.store.Payments.Update(r.Context(), id, payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, payment)
}

func (app *application) deletePaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "paymentID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Payments.Delete(r.Context(), id); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
