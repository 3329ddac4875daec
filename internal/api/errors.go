package api

import (
	"encoding/json"
	"net/http"
)

type errorMessage struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error errorMessage `json:"error"`
}

// writeError writes the standard error envelope {"error":{"message":...}}
// with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorMessage{Message: message}})
}

// writeServerError maps an unexpected store failure to a 500. Production
// deployments get a generic message; development gets the underlying error.
func writeServerError(w http.ResponseWriter, production bool, err error) {
	if production {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
