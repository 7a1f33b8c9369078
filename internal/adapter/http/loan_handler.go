package http

import (
	"net/http"

	"loanledger-backend/internal/domain/journal"
	"loanledger-backend/internal/ledger"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct {
	engine *ledger.Engine
	events journal.Repository
}

func NewLoanHandler(engine *ledger.Engine, events journal.Repository) *LoanHandler {
	return &LoanHandler{engine: engine, events: events}
}

type requestLoanReq struct {
	Principal    uint64 `json:"principal"     validate:"required,gt=0"`
	DurationDays uint32 `json:"duration_days" validate:"required,gt=0"`
	Purpose      string `json:"purpose"       validate:"required"`
}

type valueSentReq struct {
	ValueSent uint64 `json:"value_sent" validate:"required,gt=0"`
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	caller, ok := callerAccount(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-Account-Id"})
	}
	var req requestLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	id, err := h.engine.RequestLoan(caller, req.Principal, req.DurationDays, req.Purpose)
	if err != nil {
		return domainError(c, err)
	}
	l, err := h.engine.GetLoan(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	caller, ok := callerAccount(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-Account-Id"})
	}
	id, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	var req valueSentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.engine.FundLoan(caller, id, req.ValueSent); err != nil {
		return domainError(c, err)
	}
	l, err := h.engine.GetLoan(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	caller, ok := callerAccount(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-Account-Id"})
	}
	id, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	if err := h.engine.RejectLoan(caller, id); err != nil {
		return domainError(c, err)
	}
	l, err := h.engine.GetLoan(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	caller, ok := callerAccount(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-Account-Id"})
	}
	id, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	var req valueSentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	refund, err := h.engine.RepayLoan(caller, id, req.ValueSent)
	if err != nil {
		return domainError(c, err)
	}
	l, err := h.engine.GetLoan(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan": l, "refund": refund})
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	l, err := h.engine.GetLoan(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) LoanCount(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]uint64{"count": h.engine.LoanCount()})
}

func (h *LoanHandler) LoanEvents(c echo.Context) error {
	id, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	if _, err := h.engine.GetLoan(id); err != nil {
		return domainError(c, err)
	}
	recs, err := h.events.ListByLoanID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "journal unavailable"})
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *LoanHandler) UserLoans(c echo.Context) error {
	account := c.Param("account_id")
	if !reHex32.MatchString(account) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id path param"})
	}
	ids := h.engine.UserLoanIDs(account)
	return c.JSON(http.StatusOK, map[string]any{
		"account_id": account,
		"loan_ids":   ids,
		"count":      len(ids),
	})
}

func (h *LoanHandler) CreditScore(c echo.Context) error {
	account := c.Param("account_id")
	if !reHex32.MatchString(account) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id path param"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"account_id":   account,
		"credit_score": h.engine.CreditScoreOf(account),
	})
}
