package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	"bookshop/internal/apperr"
)

const indent = "    "

// MessageResponse is the body of every error response.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes v indented with four spaces.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeBody(w, statusCode, buf.Bytes())
}

// RawJSON re-indents an already encoded payload and writes it. Key order is
// kept as received.
func RawJSON(w http.ResponseWriter, statusCode int, payload []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(payload), "", indent); err != nil {
		return err
	}
	buf.WriteByte('\n')
	writeBody(w, statusCode, buf.Bytes())
	return nil
}

// Message writes {"message": message}.
func Message(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(MessageResponse{Message: message})
}

// Messages holds the client-facing text a route uses for each error kind.
type Messages struct {
	NotFound string
	Failed   string
}

// Failure writes err using the status of its kind. Not-found errors carry
// only the message; every other kind also carries the error text.
func Failure(w http.ResponseWriter, err error, msgs Messages) {
	statusCode := apperr.StatusCode(err)
	if statusCode == http.StatusNotFound {
		Message(w, statusCode, msgs.NotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(MessageResponse{Message: msgs.Failed, Error: err.Error()})
}

func writeBody(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
