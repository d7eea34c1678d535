package types

import (
	"net/http"

	platformerrors "github.com/jmgilman/go/errors"
)

// Store operation errors. Callers match them with errors.Is; the error code
// carried by each sentinel drives StatusCode.
var (
	ErrInvalidInput  = platformerrors.New(platformerrors.CodeInvalidInput, "invalid input")
	ErrInvalidConfig = platformerrors.New(platformerrors.CodeInvalidConfig, "invalid store configuration")
	ErrNotFound      = platformerrors.New(platformerrors.CodeNotFound, "resource not found")
	ErrConflict      = platformerrors.New(platformerrors.CodeConflict, "resource conflict")
	ErrWriteFailed   = platformerrors.New(platformerrors.CodeInternal, "storage write failed")
	ErrReadFailed    = platformerrors.New(platformerrors.CodeInternal, "storage read failed")
)

// StatusCode maps an error to the HTTP-style status class it represents.
// A nil error maps to 200 and an unclassified error to 500.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch platformerrors.GetCode(err) {
	case platformerrors.CodeInvalidInput, platformerrors.CodeInvalidConfig:
		return http.StatusBadRequest
	case platformerrors.CodeNotFound:
		return http.StatusNotFound
	case platformerrors.CodeConflict, platformerrors.CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
