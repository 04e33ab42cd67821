// internal/api/respond.go
package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"mafatih/internal/common/errors"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error *errors.StandardError `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	stdErr, ok := errors.AsStandard(err)
	if !ok {
		stdErr = errors.NewInternalError(err)
	}
	writeJSON(w, errors.HTTPStatus(stdErr.Code), errorResponse{Error: stdErr})
}

// decodeBody reads a JSON request body into dst. An empty body leaves dst
// untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.NewInvalidInputError("request body too large")
		}
		return errors.NewInvalidInputError("malformed JSON body: " + strings.TrimSpace(err.Error()))
	}
	return nil
}
