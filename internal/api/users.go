package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maxolivera/gophis-posts/internal/auth"
	"github.com/maxolivera/gophis-posts/internal/storage"
)

type CreateUserPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72,password"`
}

// Create User godoc
//
//	@Summary		Sign up
//	@Description	Creates a User and returns a bearer token for it
//	@Tags			authorization
//	@Accept			json
//	@Produce		json
//	@Param			Payload	body		CreateUserPayload	true	"User credentials"
//	@Success		201		{object}	TokenResponse
//	@Failure		400		{object}	error	"Email already registered or malformed body"
//	@Failure		422		{object}	error	"Email or password do not meet the requirements"
//	@Failure		500		{object}	error	"Something went wrong on the server"
//	@Router			/auth/signup [post]
func (app *Application) handlerCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in := CreateUserPayload{}
	if err := readJSON(w, r, &in); err != nil {
		err := fmt.Errorf("error reading JSON when creating a user: %v", err)
		app.respondWithError(w, r, http.StatusBadRequest, err, "invalid request body")
		return
	}

	if err := app.Validator.Struct(in); err != nil {
		app.respondWithError(w, r, http.StatusUnprocessableEntity, err, err.Error())
		return
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		err = fmt.Errorf("error hashing password: %v", err)
		app.respondWithError(w, r, http.StatusInternalServerError, err, "")
		return
	}

	user, err := app.Storage.Users.Create(ctx, in.Email, hashed)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmailUnavailable):
			err = fmt.Errorf("%v, email: %s", err, in.Email)
			app.respondWithError(w, r, http.StatusBadRequest, err, "email already registered")
		default:
			err = fmt.Errorf("error during user creation: %v", err)
			app.respondWithError(w, r, http.StatusInternalServerError, err, "")
		}
		return
	}
	app.Logger.Infow("user created", "id", user.ID)

	app.issueToken(w, r, http.StatusCreated, user.ID, user.Email)
}
