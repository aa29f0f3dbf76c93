package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainAccount "github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/account"
)

type AccountHandler struct{ uc *account.Usecase }

func NewAccountHandler(uc *account.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

type createAccountReq struct {
	Type     string `json:"type"     validate:"required,oneof=CHECKING SAVINGS"`
	Nickname string `json:"nickname" validate:"omitempty,max=64"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

type updateAccountReq struct {
	Nickname *string          `json:"nickname" validate:"omitempty,max=64"`
	Balance  *decimal.Decimal `json:"balance"`
}

func (h *AccountHandler) Create(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.uc.Create(c.Request().Context(), account.CreateInput{
		OwnerID:  p.UserID,
		Type:     domainAccount.Type(req.Type),
		Nickname: req.Nickname,
		Currency: req.Currency,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AccountHandler) Get(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	a, err := h.uc.Get(c.Request().Context(), p, c.Param("account_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) ListMine(c echo.Context) error {
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

func (h *AccountHandler) ListAll(c echo.Context) error {
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

func (h *AccountHandler) ListPending(c echo.Context) error {
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

func (h *AccountHandler) Approve(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	a, err := h.uc.Approve(c.Request().Context(), p, c.Param("account_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) Reject(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Reject(c.Request().Context(), p, c.Param("account_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) Toggle(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	a, err := h.uc.Toggle(c.Request().Context(), p, c.Param("account_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) Cancel(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	a, err := h.uc.Cancel(c.Request().Context(), p, c.Param("account_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) Update(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	var req updateAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	a, err := h.uc.Update(c.Request().Context(), p, c.Param("account_id"), account.Patch{
		Nickname: req.Nickname,
		Balance:  req.Balance,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) PermanentDelete(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.PermanentDelete(c.Request().Context(), p, c.Param("account_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
