package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Principal    decimal.Decimal `json:"principal"     validate:"money"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"term_months"   validate:"required,gte=1"`
	Purpose      string          `json:"purpose"       validate:"omitempty,max=255"`
}

type rejectLoanReq struct {
	Notes string `json:"notes" validate:"omitempty,max=255"`
}

type updateLoanReq struct {
	Purpose      *string          `json:"purpose"       validate:"omitempty,max=255"`
	Principal    *decimal.Decimal `json:"principal"     validate:"omitempty,money"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	TermMonths   *int             `json:"term_months"   validate:"omitempty,gte=1"`
	AdminNotes   *string          `json:"admin_notes"   validate:"omitempty,max=255"`
}

func (h *LoanHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Create(c.Request().Context(), loan.CreateInput{
		OwnerID:      p.UserID,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		Purpose:      req.Purpose,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *LoanHandler) Get(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Request().Context(), p, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListMine(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	list, err := h.uc.ListMine(c.Request().Context(), p.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) ListAll(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	list, err := h.uc.ListAll(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) ListPending(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	list, err := h.uc.ListPending(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) Approve(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Approve(c.Request().Context(), p, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Reject keeps the loan row with its REJECTED status and the reviewer's
// notes, unlike account and card rejection which discard the application.
func (h *LoanHandler) Reject(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Reject(c.Request().Context(), p, c.Param("loan_id"), req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Activate(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Activate(c.Request().Context(), p, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) MarkPaid(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.MarkPaid(c.Request().Context(), p, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Cancel(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Cancel(c.Request().Context(), p, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Update(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Update(c.Request().Context(), p, c.Param("loan_id"), loan.Patch{
		Purpose:      req.Purpose,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		AdminNotes:   req.AdminNotes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) PermanentDelete(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.PermanentDelete(c.Request().Context(), p, c.Param("loan_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
