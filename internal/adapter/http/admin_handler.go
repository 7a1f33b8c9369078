package http

import (
	"net/http"

	"loanledger-backend/internal/ledger"

	"github.com/labstack/echo/v4"
)

// AdminHandler exposes the administrator configuration surface. Routes using
// it must sit behind middleware.AdminGuard; the handler then acts with the
// configured admin account identity.
type AdminHandler struct {
	engine *ledger.Engine
	admin  string
}

func NewAdminHandler(engine *ledger.Engine, adminAccount string) *AdminHandler {
	return &AdminHandler{engine: engine, admin: adminAccount}
}

type setFeesReq struct {
	LenderFeeBps   uint32 `json:"lender_fee_bps"   validate:"lte=1000"`
	BorrowerFeeBps uint32 `json:"borrower_fee_bps" validate:"lte=1000"`
}

type setTreasuryReq struct {
	Account string `json:"account" validate:"required,hex32"`
}

func (h *AdminHandler) SetFees(c echo.Context) error {
	var req setFeesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.engine.SetFees(h.admin, req.LenderFeeBps, req.BorrowerFeeBps); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]uint32{
		"lender_fee_bps":   req.LenderFeeBps,
		"borrower_fee_bps": req.BorrowerFeeBps,
	})
}

func (h *AdminHandler) SetTreasury(c echo.Context) error {
	var req setTreasuryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.engine.SetTreasury(h.admin, req.Account); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"treasury": req.Account})
}

func (h *AdminHandler) Pause(c echo.Context) error {
	if err := h.engine.Pause(h.admin); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"paused": true})
}

func (h *AdminHandler) Unpause(c echo.Context) error {
	if err := h.engine.Unpause(h.admin); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"paused": false})
}

// ApproveLoan is the compatibility shim for callers that predate the funding
// flow: it approves without a lender and moves no value.
func (h *AdminHandler) ApproveLoan(c echo.Context) error {
	id, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	if err := h.engine.ApproveLoan(h.admin, id); err != nil {
		return domainError(c, err)
	}
	l, err := h.engine.GetLoan(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// Settings returns the current fee, treasury and pause configuration.
func (h *AdminHandler) Settings(c echo.Context) error {
	lender, borrower := h.engine.Fees()
	return c.JSON(http.StatusOK, map[string]any{
		"lender_fee_bps":   lender,
		"borrower_fee_bps": borrower,
		"treasury":         h.engine.Treasury(),
		"paused":           h.engine.Paused(),
	})
}
