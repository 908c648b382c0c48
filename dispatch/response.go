package dispatch

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ResponseJSON encodes v as JSON and writes it to the response with the
// given status code. The Content-Type header is set to
// "application/json". If encoding fails, an HTTP 500 Internal Server
// Error is written instead.
func ResponseJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

// notFoundBody is the structured 404 payload. Field order and key names
// are part of the response contract.
type notFoundBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeNotFound synthesizes the 404 response for an unmatched request.
// The body is written byte-exact, without a trailing newline:
//
//	{"error":"Not Found","message":"Route <path> not found"}
func writeNotFound(w http.ResponseWriter, path string) {
	body, err := json.Marshal(notFoundBody{
		Error:   "Not Found",
		Message: "Route " + path + " not found",
	})
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write(body)
}
