package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/williamkalogeropoulos/AegisBank/internal/adapter/middleware"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// principal pulls the authenticated caller out of the context. Routes behind
// the auth middleware always have one; the zero value only shows up in
// misconfigured tests.
func principal(c echo.Context) (auth.Principal, bool) {
	return middleware.PrincipalFrom(c)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
}

// RegisterRoutes wires every handler under /api plus the open health check.
// Reads answer for the caller's own resources; the /admin group exposes the
// bank-wide views.
func RegisterRoutes(e *echo.Echo, h *Handler, accounts *AccountHandler, cards *CardHandler, loans *LoanHandler, transfers *TransferHandler, authMW echo.MiddlewareFunc, idemMW echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api", authMW, idemMW)

	api.POST("/accounts", accounts.Create)
	api.GET("/accounts", accounts.ListMine)
	api.GET("/accounts/:account_id", accounts.Get)
	api.PATCH("/accounts/:account_id", accounts.Update)
	api.DELETE("/accounts/:account_id", accounts.PermanentDelete)
	api.POST("/accounts/:account_id/approve", accounts.Approve)
	api.POST("/accounts/:account_id/reject", accounts.Reject)
	api.POST("/accounts/:account_id/toggle", accounts.Toggle)
	api.POST("/accounts/:account_id/cancel", accounts.Cancel)

	api.POST("/cards", cards.Create)
	api.GET("/cards", cards.ListMine)
	api.GET("/cards/:card_id", cards.Get)
	api.PATCH("/cards/:card_id", cards.Update)
	api.DELETE("/cards/:card_id", cards.PermanentDelete)
	api.POST("/cards/:card_id/approve", cards.Approve)
	api.POST("/cards/:card_id/reject", cards.Reject)
	api.POST("/cards/:card_id/toggle", cards.Toggle)
	api.POST("/cards/:card_id/cancel", cards.Cancel)

	api.POST("/loans", loans.Create)
	api.GET("/loans", loans.ListMine)
	api.GET("/loans/:loan_id", loans.Get)
	api.PATCH("/loans/:loan_id", loans.Update)
	api.DELETE("/loans/:loan_id", loans.PermanentDelete)
	api.POST("/loans/:loan_id/approve", loans.Approve)
	api.POST("/loans/:loan_id/reject", loans.Reject)
	api.POST("/loans/:loan_id/activate", loans.Activate)
	api.POST("/loans/:loan_id/mark-paid", loans.MarkPaid)
	api.POST("/loans/:loan_id/cancel", loans.Cancel)

	api.POST("/transfers", transfers.Create)
	api.GET("/transfers", transfers.ListMine)
	api.GET("/transfers/:transfer_id", transfers.Get)
	api.PATCH("/transfers/:transfer_id", transfers.Update)
	api.DELETE("/transfers/:transfer_id", transfers.Delete)
	api.POST("/transfers/:transfer_id/process", transfers.Process)
	api.POST("/transfers/:transfer_id/cancel", transfers.Cancel)

	admin := api.Group("/admin")
	admin.GET("/accounts", accounts.ListAll)
	admin.GET("/accounts/pending", accounts.ListPending)
	admin.GET("/cards", cards.ListAll)
	admin.GET("/cards/pending", cards.ListPending)
	admin.GET("/loans", loans.ListAll)
	admin.GET("/loans/pending", loans.ListPending)
	admin.GET("/transfers", transfers.ListAll)
	admin.GET("/transfers/pending", transfers.ListPending)
}
