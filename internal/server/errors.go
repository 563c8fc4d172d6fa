package server

import (
	"errors"
	"net/http"

	"github.com/lox/wildpoker/internal/game"
)

// errorStatus maps an error to its HTTP status and wire body.
func errorStatus(err error) (int, ErrorData) {
	var v *game.ValidationError
	switch {
	case errors.As(err, &v):
		return http.StatusUnprocessableEntity, ErrorData{Code: string(v.Code), Message: v.Message}
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound, ErrorData{Code: "not_found", Message: err.Error()}
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, ErrorData{Code: "bad_request", Message: err.Error()}
	}
	return http.StatusInternalServerError, ErrorData{Code: "internal", Message: "internal server error"}
}

var errBadRequest = errors.New("bad request")
