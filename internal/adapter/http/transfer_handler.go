package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/transfer"
)

type TransferHandler struct{ uc *transfer.Usecase }

func NewTransferHandler(uc *transfer.Usecase) *TransferHandler { return &TransferHandler{uc: uc} }

type createTransferReq struct {
	FromAccountID string          `json:"from_account_id" validate:"required,hex32"`
	ToIBAN        string          `json:"to_iban"         validate:"omitempty,max=34"`
	ToAccountID   *string         `json:"to_account_id"   validate:"omitempty,hex32"`
	Amount        decimal.Decimal `json:"amount"          validate:"money"`
	Description   string          `json:"description"     validate:"omitempty,max=255"`
	Category      string          `json:"category"        validate:"omitempty,max=64"`
}

type updateTransferReq struct {
	Amount      *decimal.Decimal `json:"amount"      validate:"omitempty,money"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Category    *string          `json:"category"    validate:"omitempty,max=64"`
}

func (h *TransferHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req createTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Create(c.Request().Context(), transfer.CreateInput{
		OwnerID:       p.UserID,
		FromAccountID: req.FromAccountID,
		ToIBAN:        req.ToIBAN,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *TransferHandler) Get(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Request().Context(), p, c.Param("transfer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TransferHandler) ListMine(c echo.Context) error {
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

func (h *TransferHandler) ListAll(c echo.Context) error {
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

func (h *TransferHandler) ListPending(c echo.Context) error {
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

// Process executes the money movement. Admin-only; a short balance comes back
// as a 400 with the transfer already marked FAILED.
func (h *TransferHandler) Process(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Process(c.Request().Context(), p, c.Param("transfer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TransferHandler) Cancel(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Cancel(c.Request().Context(), p, c.Param("transfer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TransferHandler) Update(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req updateTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Update(c.Request().Context(), p, c.Param("transfer_id"), transfer.Patch{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TransferHandler) Delete(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Request().Context(), p, c.Param("transfer_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
