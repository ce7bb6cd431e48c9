package api

import (
	"net/http"

	"cancel-saga/internal/pkg/errs"
	"cancel-saga/internal/usecase/commands"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Order matters: the first matching sentinel wins.
var cancellationErrors = []errorMapping{
	{commands.ErrUnknownStore, http.StatusForbidden, "Unknown store"},
	{commands.ErrIdentityInvalid, http.StatusUnauthorized, "Verification failed"},
	{commands.ErrCyclesExceeded, http.StatusUnprocessableEntity, "This subscription can no longer be cancelled online"},
	{commands.ErrUncomputableCompensation, http.StatusUnprocessableEntity, "This subscription cannot be cancelled online"},
	{commands.ErrCompensatingOrderNotFound, http.StatusNotFound, "Draft order not found"},
	{commands.ErrExternalUnavailable, http.StatusBadGateway, "A partner service is unavailable, please try again later"},
	{commands.ErrLedgerUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
	{commands.ErrLedgerInconsistency, http.StatusInternalServerError, "Cancellation could not be recorded, support has been notified"},
}

func statusFor(err error) (int, string) {
	for _, m := range cancellationErrors {
		if errs.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}
