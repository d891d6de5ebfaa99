package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/gridfit/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusCode maps an error to its HTTP status.
//
//	INVALID_INPUT (malformed body)          400
//	other INVALID_*, DEGENERATE_INPUT       422
//	NOT_FOUND, FILE_NOT_FOUND               404
//	everything else                         500
func StatusCode(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errs.ErrCodeInvalidConfig, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidAlgorithm,
		errs.ErrCodeInvalidPath, errs.ErrCodeDegenerateInput:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// fail writes err as a JSON error. Internal error details are logged, not
// returned.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	code := string(errs.GetCode(err))
	msg := errs.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
		code = string(errs.ErrCodeInternal)
		msg = "internal error"
	}
	writeError(w, status, code, msg)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
