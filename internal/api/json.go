package api

import (
	"encoding/json"
	"net/http"
)

const MAX_BYTES = 4 << 20 // 4 MB, a full post plus JSON overhead

func (app *Application) respondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	if code == http.StatusNoContent {
		w.WriteHeader(code)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		app.Logger.Errorw("failed to marshal JSON response", "method", r.Method, "path", r.URL.Path, "error", err)

		// NOTE(maolivera): Hardcoding to avoid calling respondWithError, which marshals again
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("{\"error\": \"the server encountered a problem\" }"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

// Will sent a response to the client with code `code` and message `message`, and will log the error `err`
func (app *Application) respondWithError(w http.ResponseWriter, r *http.Request, code int, err error, message string) {
	type response struct {
		Error string `json:"error"`
	}

	res := response{}

	// default messages for specific codes
	if message == "" {
		switch code {
		case http.StatusInternalServerError:
			res.Error = "the server encountered a problem"
		case http.StatusUnauthorized:
			res.Error = "could not validate credentials"
		default:
			res.Error = http.StatusText(code)
		}
	} else {
		res.Error = message
	}

	if code >= http.StatusInternalServerError {
		app.Logger.Errorw("sending error", "code", code, "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		app.Logger.Warnw("sending error", "code", code, "method", r.Method, "path", r.URL.Path, "error", err)
	}

	app.respondWithJSON(w, r, code, res)
}

func (app *Application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.respondWithError(w, r, http.StatusUnauthorized, err, message)
}

func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MAX_BYTES)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(data)
}
