package loan

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/errs"
	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/loan"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/uow"
	"github.com/williamkalogeropoulos/AegisBank/internal/testutil/loanmock"
	"github.com/williamkalogeropoulos/AegisBank/internal/testutil/uowmock"
)

var (
	admin = auth.Principal{UserID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: auth.RoleAdmin}
	owner = auth.Principal{UserID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Role: auth.RoleUser}
)

func passthrough(loans *loanmock.Repo) *uowmock.UoW {
	return uowmock.Passthrough(uow.Repos{Loans: loans})
}

func TestCreate_Validation(t *testing.T) {
	repo := &loanmock.Repo{}
	u := NewUsecase(repo, passthrough(repo))
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"principal below floor", CreateInput{OwnerID: owner.UserID, Principal: dec("99"), InterestRate: dec("0.05"), TermMonths: 12}},
		{"principal above cap", CreateInput{OwnerID: owner.UserID, Principal: dec("100001"), InterestRate: dec("0.05"), TermMonths: 12}},
		{"negative rate", CreateInput{OwnerID: owner.UserID, Principal: dec("5000"), InterestRate: dec("-0.01"), TermMonths: 12}},
		{"rate above cap", CreateInput{OwnerID: owner.UserID, Principal: dec("5000"), InterestRate: dec("0.26"), TermMonths: 12}},
		{"zero term", CreateInput{OwnerID: owner.UserID, Principal: dec("5000"), InterestRate: dec("0.05"), TermMonths: 0}},
		{"term above cap", CreateInput{OwnerID: owner.UserID, Principal: dec("5000"), InterestRate: dec("0.05"), TermMonths: 361}},
		{"missing owner", CreateInput{Principal: dec("5000"), InterestRate: dec("0.05"), TermMonths: 12}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := u.Create(ctx, tc.in); !errs.IsValidation(err) {
				t.Errorf("got %v, want ValidationError", err)
			}
		})
	}
}

func TestCreate_DerivesPaymentAndPending(t *testing.T) {
	var created *domain.Loan
	repo := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			created = l
			return nil
		},
	}
	u := NewUsecase(repo, passthrough(repo))

	got, err := u.Create(context.Background(), CreateInput{
		OwnerID:      owner.UserID,
		Principal:    dec("10000"),
		InterestRate: dec("0.06"),
		TermMonths:   60,
		Purpose:      "kitchen renovation",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil {
		t.Fatal("repo.Create not called")
	}
	if got.Status != domain.StatusPending {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
	if !got.MonthlyPayment.Equal(dec("193.33")) {
		t.Errorf("monthly payment = %s, want 193.33", got.MonthlyPayment)
	}
	if len(got.LoanID) != 32 {
		t.Errorf("loan id %q is not a 32-char public id", got.LoanID)
	}
}

func TestApprove_StateAndRoleGates(t *testing.T) {
	newLoan := func(status domain.Status) *loanmock.Repo {
		return &loanmock.Repo{
			GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
				return &domain.Loan{LoanID: loanID, OwnerID: owner.UserID, Status: status}, nil
			},
		}
	}

	t.Run("pending approved by admin", func(t *testing.T) {
		repo := newLoan(domain.StatusPending)
		repo.SaveFn = func(ctx context.Context, l *domain.Loan) error {
			if l.Status != domain.StatusApproved {
				t.Fatalf("saved status = %s, want APPROVED", l.Status)
			}
			return nil
		}
		u := NewUsecase(repo, passthrough(repo))
		if _, err := u.Approve(context.Background(), admin, "x"); err != nil {
			t.Fatalf("Approve: %v", err)
		}
	})

	t.Run("owner cannot approve", func(t *testing.T) {
		repo := newLoan(domain.StatusPending)
		u := NewUsecase(repo, passthrough(repo))
		if _, err := u.Approve(context.Background(), owner, "x"); !errors.Is(err, errs.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	t.Run("already approved", func(t *testing.T) {
		repo := newLoan(domain.StatusApproved)
		u := NewUsecase(repo, passthrough(repo))
		if _, err := u.Approve(context.Background(), admin, "x"); !errors.Is(err, errs.ErrInvalidTransition) {
			t.Errorf("got %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &loanmock.Repo{
			GetByLoanIDForUpdateFn: func(context.Context, string) (*domain.Loan, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		u := NewUsecase(repo, passthrough(repo))
		if _, err := u.Approve(context.Background(), admin, "x"); !errors.Is(err, errs.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestReject_RetainsRecordWithNotes(t *testing.T) {
	var saved *domain.Loan
	repo := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: loanID, OwnerID: owner.UserID, Status: domain.StatusPending}, nil
		},
		SaveFn: func(ctx context.Context, l *domain.Loan) error {
			saved = l
			return nil
		},
	}
	u := NewUsecase(repo, passthrough(repo))

	got, err := u.Reject(context.Background(), admin, "x", "income not verifiable")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if got.Status != domain.StatusRejected {
		t.Errorf("status = %s, want REJECTED", got.Status)
	}
	if saved == nil || saved.AdminNotes != "income not verifiable" {
		t.Errorf("admin notes not persisted: %+v", saved)
	}
}

func TestCancel_OwnerAllowed(t *testing.T) {
	repo := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: loanID, OwnerID: owner.UserID, Status: domain.StatusApproved}, nil
		},
	}
	u := NewUsecase(repo, passthrough(repo))

	got, err := u.Cancel(context.Background(), owner, "x")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Status != domain.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", got.Status)
	}
}

func TestUpdate_NumericEditRecomputesPayment(t *testing.T) {
	var saved *domain.Loan
	repo := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			return &domain.Loan{
				LoanID: loanID, OwnerID: owner.UserID, Status: domain.StatusPending,
				Principal: dec("10000"), InterestRate: dec("0.06"), TermMonths: 60,
				MonthlyPayment: dec("193.33"),
			}, nil
		},
		SaveFn: func(ctx context.Context, l *domain.Loan) error {
			saved = l
			return nil
		},
	}
	u := NewUsecase(repo, passthrough(repo))

	zero := decimal.Zero
	months := 12
	p := dec("1200")
	_, err := u.Update(context.Background(), admin, "x", Patch{Principal: &p, InterestRate: &zero, TermMonths: &months})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if saved == nil || !saved.MonthlyPayment.Equal(dec("100")) {
		t.Errorf("monthly payment not recomputed: %+v", saved)
	}
}

func TestUpdate_Gates(t *testing.T) {
	repo := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			return &domain.Loan{
				LoanID: loanID, OwnerID: owner.UserID, Status: domain.StatusActive,
				Principal: dec("10000"), InterestRate: dec("0.06"), TermMonths: 60,
			}, nil
		},
	}
	u := NewUsecase(repo, passthrough(repo))
	ctx := context.Background()

	p := dec("20000")
	if _, err := u.Update(ctx, owner, "x", Patch{Principal: &p}); !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("owner principal edit: got %v, want ErrForbidden", err)
	}
	// numeric edits require PENDING even for admins
	if _, err := u.Update(ctx, admin, "x", Patch{Principal: &p}); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Errorf("active loan principal edit: got %v, want ErrInvalidTransition", err)
	}
	// cosmetic edit by owner is fine
	purpose := "car"
	if _, err := u.Update(ctx, owner, "x", Patch{Purpose: &purpose}); err != nil {
		t.Errorf("owner purpose edit: %v", err)
	}
}

func TestPermanentDelete_AdminOnly(t *testing.T) {
	repo := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			return &domain.Loan{LoanID: loanID, OwnerID: owner.UserID, Status: domain.StatusRejected}, nil
		},
	}
	u := NewUsecase(repo, passthrough(repo))
	ctx := context.Background()

	if err := u.PermanentDelete(ctx, owner, "x"); !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("owner delete: got %v, want ErrForbidden", err)
	}
	if err := u.PermanentDelete(ctx, admin, "x"); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}
