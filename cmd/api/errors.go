package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"estate/internal/auth"
	"estate/internal/db"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request, reason string) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path, "reason", reason)

	writeJSONError(w, http.StatusForbidden, reason)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("conflict response", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusConflict, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter.String())
}

// rejectionResponse renders a failed authorization: 401 when no valid
// credential was presented, 403 when the role is unknown or not allowed.
func (app *application) rejectionResponse(w http.ResponseWriter, r *http.Request, err error) {
	var rej *auth.Rejection
	if !errors.As(err, &rej) {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	if errors.Is(rej, auth.ErrForbidden) {
		app.forbiddenResponse(w, r, rej.Reason)
		return
	}

	app.logger.Warnw("unauthenticated", "method", r.Method, "path", r.URL.Path, "reason", rej.Reason)
	writeJSONError(w, http.StatusUnauthorized, rej.Reason)
}

// storeErrorResponse maps storage sentinels onto HTTP statuses.
func (app *application) storeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, db.ErrConflict), errors.Is(err, db.ErrInUse):
		app.conflictResponse(w, r, err)
	case errors.Is(err, db.ErrInvalidReference), errors.Is(err, db.ErrConstraint):
		app.badRequestResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

// exportErrorResponse answers a failed CSV export. An oversized export is
// the caller's to narrow; anything else is a server error.
func (app *application) exportErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errExportTooLarge) {
		app.logger.Warnw("export refused", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	app.internalServerError(w, r, err)
}
