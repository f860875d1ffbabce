package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors the API error shape.
type errorBody struct {
	Code      string  `json:"code"`
	Detail    string  `json:"detail"`
	Attribute *string `json:"attribute"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeBody(w, errorBody{Code: code, Detail: detail})
}

func writeBody(w http.ResponseWriter, body errorBody) {
	_ = json.NewEncoder(w).Encode(body)
}
