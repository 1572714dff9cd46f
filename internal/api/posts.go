package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/internal/service"
)

type CreatePostPayload struct {
	Text string `json:"text"`
}

type PostListResponse struct {
	Posts []models.Post `json:"posts"`
}

// List Posts godoc
//
//	@Summary		Lists own posts
//	@Description	Posts of the logged user in creation order. Served from a five minute cache that is dropped on every create or delete.
//	@Tags			posts
//	@Produce		json
//	@Success		200	{object}	PostListResponse
//	@Failure		401	{object}	error	"Could not validate credentials"
//	@Failure		500	{object}	error	"Something went wrong on the server"
//	@Router			/posts [get]
//	@Security		ApiKeyAuth
func (app *Application) handlerListPosts(w http.ResponseWriter, r *http.Request) {
	identity := getIdentity(r)

	posts, err := app.Posts.ListPosts(r.Context(), identity)
	if err != nil {
		app.respondWithError(w, r, http.StatusInternalServerError, err, "")
		return
	}

	app.respondWithJSON(w, r, http.StatusOK, PostListResponse{Posts: posts})
}

// Create Post godoc
//
//	@Summary		Creates a Post
//	@Description	Text must be between 1 byte and 1 MB of UTF-8
//	@Tags			posts
//	@Accept			json
//	@Produce		json
//	@Param			Payload	body		CreatePostPayload	true	"Post text"
//	@Success		201		{object}	models.Post
//	@Failure		400		{object}	error	"Malformed body"
//	@Failure		401		{object}	error	"Could not validate credentials"
//	@Failure		422		{object}	error	"Text is empty or too large"
//	@Failure		500		{object}	error	"Something went wrong on the server"
//	@Router			/posts [post]
//	@Security		ApiKeyAuth
func (app *Application) handlerCreatePost(w http.ResponseWriter, r *http.Request) {
	identity := getIdentity(r)

	in := CreatePostPayload{}
	if err := readJSON(w, r, &in); err != nil {
		err := fmt.Errorf("error during JSON decoding: %v", err)
		app.respondWithError(w, r, http.StatusBadRequest, err, "invalid request body")
		return
	}

	post, err := app.Posts.CreatePost(r.Context(), identity, in.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			app.respondWithError(w, r, http.StatusUnprocessableEntity, err, err.Error())
		default:
			app.respondWithError(w, r, http.StatusInternalServerError, err, "")
		}
		return
	}

	app.respondWithJSON(w, r, http.StatusCreated, post)
}

// Delete Post godoc
//
//	@Summary		Deletes a Post
//	@Description	Only the owner can delete a post. A post of another user is reported as not found.
//	@Tags			posts
//	@Produce		json
//	@Param			postID	path	int	true	"Post ID"
//	@Success		204		"The post was deleted"
//	@Failure		400		{object}	error	"Post ID is not a number"
//	@Failure		401		{object}	error	"Could not validate credentials"
//	@Failure		404		{object}	error	"Post not found"
//	@Failure		500		{object}	error	"Failed to delete post"
//	@Router			/posts/{postID} [delete]
//	@Security		ApiKeyAuth
func (app *Application) handlerDeletePost(w http.ResponseWriter, r *http.Request) {
	identity := getIdentity(r)

	idStr := chi.URLParam(r, "postID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		err := fmt.Errorf("post_id not valid: %v", err)
		app.respondWithError(w, r, http.StatusBadRequest, err, "invalid post id")
		return
	}

	if _, err := app.Posts.DeletePost(r.Context(), identity, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			app.respondWithError(w, r, http.StatusNotFound, err, "post not found")
		case errors.Is(err, service.ErrDeleteFailed):
			app.respondWithError(w, r, http.StatusInternalServerError, err, "failed to delete post")
		default:
			app.respondWithError(w, r, http.StatusInternalServerError, err, "")
		}
		return
	}

	app.respondWithJSON(w, r, http.StatusNoContent, nil)
}
