package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"loanledger-backend/internal/domain/loan"

	"github.com/labstack/echo/v4"
)

// statusFor maps the ledger error taxonomy onto HTTP statuses: validation
// errors are unprocessable, state conflicts conflict, a paused ledger is
// temporarily unavailable, and a rejected payout leg is an upstream failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loan.ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrInvalidDuration),
		errors.Is(err, loan.ErrEmptyPurpose),
		errors.Is(err, loan.ErrIncorrectValue),
		errors.Is(err, loan.ErrInsufficientValue),
		errors.Is(err, loan.ErrIndexOutOfRange),
		errors.Is(err, loan.ErrFeeTooHigh),
		errors.Is(err, loan.ErrInvalidTreasury):
		return http.StatusUnprocessableEntity
	case errors.Is(err, loan.ErrNotPending),
		errors.Is(err, loan.ErrNotApproved),
		errors.Is(err, loan.ErrNotBorrower),
		errors.Is(err, loan.ErrNoLender),
		errors.Is(err, loan.ErrReentrantCall):
		return http.StatusConflict
	case errors.Is(err, loan.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, loan.ErrPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, loan.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func domainError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// callerAccount reads the authenticated caller identity forwarded by the
// wallet layer.
func callerAccount(c echo.Context) (string, bool) {
	acct := strings.TrimSpace(c.Request().Header.Get("X-Account-Id"))
	return acct, reHex32.MatchString(acct)
}

func loanIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("loan_id"), 10, 64)
	return id, err == nil
}
