package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"status"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// StatusFor maps an engine error code to an HTTP status
func StatusFor(err error) int {
	switch dnderr.GetCode(err) {
	case dnderr.CodeMalformedExpression, dnderr.CodeInvalidArgument, dnderr.CodeInvalidAmount:
		return http.StatusBadRequest
	case dnderr.CodeNotFound:
		return http.StatusNotFound
	case dnderr.CodeAlreadyExists, dnderr.CodeNotYourTurn, dnderr.CodeEncounterEnded, dnderr.CodeNoValidTarget:
		return http.StatusConflict
	case dnderr.CodeEmptyEncounter:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, &ErrorResponse{Code: code, Message: message, Status: status})
}

// fail renders an engine error. Internal errors are logged and their message hidden.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, status, string(dnderr.CodeInternal), "internal error")
		return
	}

	writeJSON(w, status, &ErrorResponse{
		Code:    string(dnderr.GetCode(err)),
		Message: err.Error(),
		Status:  status,
		Meta:    dnderr.GetMeta(err),
	})
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return dnderr.InvalidArgumentf("invalid JSON body: %v", err)
	}
	return nil
}
