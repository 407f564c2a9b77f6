package apperr

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Respond writes err as a structured JSON error. Internal errors are
// logged server-side and surfaced to the client as a generic message.
func Respond(w http.ResponseWriter, err error) {
	kind := KindOf(err)

	msg := err.Error()
	var ae *Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	if kind == Internal {
		log.Printf("internal error: %v", err)
		msg = "Something went wrong"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(kind.StatusCode())
	json.NewEncoder(w).Encode(map[string]any{
		"error":   kind.String(),
		"message": msg,
	})
}
