package loan

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/errs"
	domainLoan "github.com/williamkalogeropoulos/AegisBank/internal/domain/loan"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/uow"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/lifecycle"
	"github.com/williamkalogeropoulos/AegisBank/pkg/id"
)

type Usecase struct {
	repo domainLoan.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domainLoan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

func validateTerms(principal, rate decimal.Decimal, termMonths int) error {
	if principal.LessThan(domainLoan.MinPrincipal) || principal.GreaterThan(domainLoan.MaxPrincipal) {
		return errs.Validation("principal", "must be between 100 and 100000")
	}
	if rate.IsNegative() || rate.GreaterThan(domainLoan.MaxInterestRate) {
		return errs.Validation("interest_rate", "must be between 0 and 0.25")
	}
	if termMonths < 1 || termMonths > domainLoan.MaxTermMonths {
		return errs.Validation("term_months", "must be between 1 and 360")
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domainLoan.Loan, error) {
	if in.OwnerID == "" {
		return nil, errs.Validation("owner_id", "is required")
	}
	if err := validateTerms(in.Principal, in.InterestRate, in.TermMonths); err != nil {
		return nil, err
	}

	l := &domainLoan.Loan{
		LoanID:         id.New32(),
		OwnerID:        in.OwnerID,
		Principal:      in.Principal,
		InterestRate:   in.InterestRate,
		TermMonths:     in.TermMonths,
		Status:         domainLoan.StatusPending,
		MonthlyPayment: MonthlyPayment(in.Principal, in.InterestRate, in.TermMonths),
		Purpose:        in.Purpose,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (u *Usecase) Get(ctx context.Context, p auth.Principal, loanID string) (*domainLoan.Loan, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if !p.IsAdmin() && !p.Owns(l.OwnerID) {
		return nil, errs.ErrNotFound
	}
	return l, nil
}

func (u *Usecase) ListMine(ctx context.Context, ownerID string) ([]domainLoan.Loan, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}

func (u *Usecase) ListAll(ctx context.Context, p auth.Principal) ([]domainLoan.Loan, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return u.repo.ListAll(ctx)
}

func (u *Usecase) ListPending(ctx context.Context, p auth.Principal) ([]domainLoan.Loan, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return u.repo.ListByStatus(ctx, domainLoan.StatusPending)
}

func (u *Usecase) Approve(ctx context.Context, p auth.Principal, loanID string) (*domainLoan.Loan, error) {
	return u.applyTransition(ctx, p, loanID, lifecycle.ActionApprove, nil)
}

func (u *Usecase) Reject(ctx context.Context, p auth.Principal, loanID, notes string) (*domainLoan.Loan, error) {
	return u.applyTransition(ctx, p, loanID, lifecycle.ActionReject, func(l *domainLoan.Loan) {
		if notes != "" {
			l.AdminNotes = notes
		}
	})
}

func (u *Usecase) Activate(ctx context.Context, p auth.Principal, loanID string) (*domainLoan.Loan, error) {
	return u.applyTransition(ctx, p, loanID, lifecycle.ActionActivate, nil)
}

func (u *Usecase) MarkPaid(ctx context.Context, p auth.Principal, loanID string) (*domainLoan.Loan, error) {
	return u.applyTransition(ctx, p, loanID, lifecycle.ActionMarkPaid, nil)
}

func (u *Usecase) Cancel(ctx context.Context, p auth.Principal, loanID string) (*domainLoan.Loan, error) {
	return u.applyTransition(ctx, p, loanID, lifecycle.ActionCancel, nil)
}

// applyTransition runs one lifecycle edge inside a transaction. The stored
// status is re-read under lock, so a losing racer gets ErrInvalidTransition.
func (u *Usecase) applyTransition(ctx context.Context, p auth.Principal, loanID string, action lifecycle.Action, mutate func(*domainLoan.Loan)) (*domainLoan.Loan, error) {
	var out *domainLoan.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		rule, err := lifecycle.Transition(lifecycle.KindLoan, string(l.Status), action, p, l.OwnerID)
		if err != nil {
			return err
		}
		l.Status = domainLoan.Status(rule.Next)
		if mutate != nil {
			mutate(l)
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, p auth.Principal, loanID string, patch Patch) (*domainLoan.Loan, error) {
	if patch.adminOnly() && !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	var out *domainLoan.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if !p.IsAdmin() && !p.Owns(l.OwnerID) {
			return errs.ErrForbidden
		}
		if patch.touchesTerms() && l.Status != domainLoan.StatusPending {
			return errs.ErrInvalidTransition
		}

		if patch.Purpose != nil {
			l.Purpose = *patch.Purpose
		}
		if patch.AdminNotes != nil {
			l.AdminNotes = *patch.AdminNotes
		}
		if patch.Principal != nil {
			l.Principal = *patch.Principal
		}
		if patch.InterestRate != nil {
			l.InterestRate = *patch.InterestRate
		}
		if patch.TermMonths != nil {
			l.TermMonths = *patch.TermMonths
		}
		if patch.touchesTerms() {
			if err := validateTerms(l.Principal, l.InterestRate, l.TermMonths); err != nil {
				return err
			}
			l.MonthlyPayment = MonthlyPayment(l.Principal, l.InterestRate, l.TermMonths)
		}

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) PermanentDelete(ctx context.Context, p auth.Principal, loanID string) error {
	if !p.IsAdmin() {
		return errs.ErrForbidden
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		return r.Loans.Delete(ctx, loanID)
	})
}
