package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainCard "github.com/williamkalogeropoulos/AegisBank/internal/domain/card"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/card"
)

type CardHandler struct{ uc *card.Usecase }

func NewCardHandler(uc *card.Usecase) *CardHandler { return &CardHandler{uc: uc} }

type createCardReq struct {
	AccountID   string           `json:"account_id"   validate:"required,hex32"`
	Type        string           `json:"type"         validate:"required,oneof=DEBIT CREDIT"`
	CreditLimit *decimal.Decimal `json:"credit_limit" validate:"omitempty,money"`
}

type updateCardReq struct {
	CreditLimit *decimal.Decimal `json:"credit_limit" validate:"omitempty,money"`
}

func (h *CardHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req createCardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Create(c.Request().Context(), card.CreateInput{
		OwnerID:     p.UserID,
		AccountID:   req.AccountID,
		Type:        domainCard.Type(req.Type),
		CreditLimit: req.CreditLimit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CardHandler) Get(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Request().Context(), p, c.Param("card_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CardHandler) ListMine(c echo.Context) error {
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

func (h *CardHandler) ListAll(c echo.Context) error {
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

func (h *CardHandler) ListPending(c echo.Context) error {
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

func (h *CardHandler) Approve(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Approve(c.Request().Context(), p, c.Param("card_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CardHandler) Reject(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Reject(c.Request().Context(), p, c.Param("card_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CardHandler) Toggle(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Toggle(c.Request().Context(), p, c.Param("card_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CardHandler) Cancel(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Cancel(c.Request().Context(), p, c.Param("card_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CardHandler) Update(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req updateCardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Update(c.Request().Context(), p, c.Param("card_id"), card.Patch{
		CreditLimit: req.CreditLimit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CardHandler) PermanentDelete(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.PermanentDelete(c.Request().Context(), p, c.Param("card_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
