package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/loan"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/uow"
	"github.com/williamkalogeropoulos/AegisBank/internal/testutil/loanmock"
	"github.com/williamkalogeropoulos/AegisBank/internal/testutil/uowmock"
	uc "github.com/williamkalogeropoulos/AegisBank/internal/usecase/loan"
)

func loanUsecase(repo *loanmock.Repo) *uc.Usecase {
	return uc.NewUsecase(repo, uowmock.Passthrough(uow.Repos{Loans: repo}))
}

func TestCreateLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	repo := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error { return nil },
	}
	h := NewLoanHandler(loanUsecase(repo))

	c, rec := newCtx(e, ownerP, stdhttp.MethodPost, "/api/loans", mustJSON(map[string]any{
		"principal":     "10000",
		"interest_rate": "0.06",
		"term_months":   60,
		"purpose":       "renovation",
	}))
	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	var got domain.Loan
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != domain.StatusPending {
		t.Fatalf("status = %s, want PENDING", got.Status)
	}
	if !got.MonthlyPayment.Equal(decimal.RequireFromString("193.33")) {
		t.Fatalf("monthly payment = %s, want 193.33", got.MonthlyPayment)
	}
}

func TestCreateLoan_OutOfBoundsIs400(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(loanUsecase(&loanmock.Repo{}))

	// passes the wire-level checks, fails the business bounds
	c, rec := newCtx(e, ownerP, stdhttp.MethodPost, "/api/loans", mustJSON(map[string]any{
		"principal":     "500000",
		"interest_rate": "0.06",
		"term_months":   60,
	}))
	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
	}
}

func TestRejectLoan_KeepsNotes(t *testing.T) {
	e := newEchoWithValidator()
	loanID := strings.Repeat("d", 32)
	var saved *domain.Loan
	repo := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: id, OwnerID: ownerP.UserID, Status: domain.StatusPending}, nil
		},
		SaveFn: func(ctx context.Context, l *domain.Loan) error {
			saved = l
			return nil
		},
	}
	h := NewLoanHandler(loanUsecase(repo))

	c, rec := newCtx(e, adminP, stdhttp.MethodPost, "/api/loans/"+loanID+"/reject", mustJSON(map[string]any{
		"notes": "income not verifiable",
	}))
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.Reject(c); err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if saved == nil || saved.Status != domain.StatusRejected || saved.AdminNotes != "income not verifiable" {
		t.Fatalf("unexpected saved loan: %+v", saved)
	}
}

func TestMarkPaidLoan_NonAdminForbidden(t *testing.T) {
	e := echo.New()
	loanID := strings.Repeat("d", 32)
	repo := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: id, OwnerID: ownerP.UserID, Status: domain.StatusActive}, nil
		},
	}
	h := NewLoanHandler(loanUsecase(repo))

	c, rec := newCtx(e, ownerP, stdhttp.MethodPost, "/api/loans/"+loanID+"/mark-paid", nil)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.MarkPaid(c); err != nil {
		t.Fatalf("MarkPaid error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
