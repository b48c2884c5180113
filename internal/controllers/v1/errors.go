package v1

import (
	"errors"
	"net/http"

	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"insufficient funds: 50.00 requested, 20.00 available"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	for _, e := range []error{ledger.ErrAlreadyUndone, ledger.ErrStaleAmount, models.ErrGoalExists, models.ErrEnvelopeExists} {
		if errors.Is(err, e) {
			return http.StatusConflict
		}
	}

	return http.StatusBadRequest
}
