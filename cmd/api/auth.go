package main

import (
	"errors"
	"net/http"
	"strings"

	"estate/internal/auth"
	"estate/internal/db"
	"estate/internal/domain/users"
	"estate/internal/mailer"
)

type CreateUserTokenPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UserWithToken struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// registerUserHandler godoc
//
//	@Summary		Registers a user
//	@Description	Self registration. The account always gets the USER role.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		users.CreateUserRequest	true	"User credentials"
//	@Success		201		{object}	UserWithToken			"User registered"
//	@Failure		400		{object}	error
//	@Failure		409		{object}	error
//	@Failure		500		{object}	error
//	@Router			/authentication/user [post]
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload users.CreateUserRequest
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	payload.Role = string(auth.RoleUser)

	user, err := app.createUser(r, payload)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	token, err := app.authenticator.GenerateToken(user.ID, user.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, UserWithToken{User: user, Token: token}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createUser persists payload and queues the welcome mail. payload.Role
// must already be validated.
func (app *application) createUser(r *http.Request, payload users.CreateUserRequest) (*users.User, error) {
	role := auth.RoleUser
	if payload.Role != "" {
		role = auth.Role(payload.Role)
	}

	user := &users.User{
		Email:          strings.ToLower(strings.TrimSpace(payload.Email)),
		FullName:       payload.FullName,
		Username:       payload.Username,
		Phone:          payload.Phone,
		ContactAddress: payload.ContactAddress,
		State:          payload.State,
		LGA:            payload.LGA,
		Country:        payload.Country,
		Role:           role,
		IsActive:       true,
	}
	if err := user.Password.Set(payload.Password); err != nil {
		return nil, err
	}

	if err := app.store.Users.Create(r.Context(), user); err != nil {
		return nil, err
	}

	vars := struct {
		Username string
		Role     string
		LoginURL string
	}{
		Username: user.FullName,
		Role:     string(user.Role),
		LoginURL: app.config.FrontendURL + "/login",
	}

	app.background(func() {
		if err := app.mailer.Send(mailer.UserWelcomeTemplate, user.FullName, user.Email, vars); err != nil {
			app.logger.Errorw("error sending welcome email", "user", user.ID, "error", err)
			return
		}
		app.logger.Infow("welcome email sent", "user", user.ID)
	})

	return user, nil
}

// createTokenHandler godoc
//
//	@Summary		Creates an access token
//	@Description	Exchanges email and password for a signed bearer token
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateUserTokenPayload	true	"User credentials"
//	@Success		200		{object}	UserWithToken			"Token"
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		429		{object}	error
//	@Failure		500		{object}	error
//	@Router			/authentication/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserTokenPayload
	if err := decodeAndValidate(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.store.Users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := user.Password.Compare(payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	if !user.IsActive {
		app.unauthorizedErrorResponse(w, r, errors.New("account is inactive"))
		return
	}

	token, err := app.authenticator.GenerateToken(user.ID, user.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, UserWithToken{User: user, Token: token}); err != nil {
		app.internalServerError(w, r, err)
	}
}
