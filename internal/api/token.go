package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maxolivera/gophis-posts/internal/auth"
	"github.com/maxolivera/gophis-posts/internal/storage"
)

type CreateTokenPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (app *Application) issueToken(w http.ResponseWriter, r *http.Request, code int, userID int64, email string) {
	token, err := app.Authenticator.Issue(userID, email)
	if err != nil {
		err = fmt.Errorf("error issuing token for user %d: %v", userID, err)
		app.respondWithError(w, r, http.StatusInternalServerError, err, "")
		return
	}

	app.respondWithJSON(w, r, code, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Create Token godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a bearer token
//	@Tags			authorization
//	@Accept			json
//	@Produce		json
//	@Param			Payload	body		CreateTokenPayload	true	"User credentials"
//	@Success		200		{object}	TokenResponse		"Token"
//	@Failure		400		{object}	error				"Some parameter was not provided."
//	@Failure		401		{object}	error				"Incorrect email or password"
//	@Failure		500		{object}	error				"Something went wrong on the server"
//	@Router			/auth/login [post]
func (app *Application) handlerCreateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in := CreateTokenPayload{}
	if err := readJSON(w, r, &in); err != nil {
		err := fmt.Errorf("error reading JSON when creating a token: %v", err)
		app.respondWithError(w, r, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if in.Email == "" || in.Password == "" {
		err := errors.New("email and password are required")
		app.respondWithError(w, r, http.StatusBadRequest, err, err.Error())
		return
	}

	user, err := app.Storage.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// NOTE(maolivera): Returning 404 is insecure
			app.unauthorizedErrorResponse(w, r, err, "incorrect email or password")
		default:
			app.respondWithError(w, r, http.StatusInternalServerError, err, "")
		}
		return
	}

	if !auth.VerifyPassword(user.HashedPassword, in.Password) {
		err := fmt.Errorf("wrong password for user %d", user.User.ID)
		app.unauthorizedErrorResponse(w, r, err, "incorrect email or password")
		return
	}

	app.issueToken(w, r, http.StatusOK, user.User.ID, user.User.Email)
}
