package utilities

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// Errors returned by DecodeJSON. Their messages are safe to show to clients; the
// wrapped cause is not.
var (
	ErrEmptyBody     = errors.New("request body must not be empty")
	ErrMalformedBody = errors.New("malformed JSON body")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse is the JSON body returned by endpoints without a resource to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse.
func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) error {
	return WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// DecodeJSON decodes a single JSON document from the request body into dst. The body
// is capped at 1 MiB.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: %w", ErrBodyTooLarge, err)
		default:
			return fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
	}

	if dec.More() {
		return fmt.Errorf("%w: more than one JSON document", ErrMalformedBody)
	}

	return nil
}
