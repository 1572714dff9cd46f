package api

import (
	"net/http"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Env     string `json:"env"`
	Version string `json:"version"`
}

// Healthz godoc
//
//	@Summary	Health check
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/healthz [get]
func (app *Application) handlerHealthz(w http.ResponseWriter, r *http.Request) {
	res := HealthResponse{
		Status:  "ok",
		Env:     app.Config.Environment,
		Version: app.Config.Version,
	}

	app.respondWithJSON(w, r, http.StatusOK, res)
}
