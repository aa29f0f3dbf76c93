package account

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domainAccount "github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/errs"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/uow"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/lifecycle"
	"github.com/williamkalogeropoulos/AegisBank/pkg/id"
)

const defaultCurrency = "EUR"

type Usecase struct {
	repo domainAccount.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domainAccount.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domainAccount.Account, error) {
	if in.OwnerID == "" {
		return nil, errs.Validation("owner_id", "is required")
	}
	if in.Type != domainAccount.TypeChecking && in.Type != domainAccount.TypeSavings {
		return nil, errs.Validation("type", "must be CHECKING or SAVINGS")
	}
	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	iban, err := u.uniqueIBAN(ctx)
	if err != nil {
		return nil, err
	}

	a := &domainAccount.Account{
		AccountID: id.New32(),
		OwnerID:   in.OwnerID,
		Type:      in.Type,
		IBAN:      iban,
		Balance:   decimal.Zero,
		Currency:  currency,
		Status:    domainAccount.StatusPending,
		Nickname:  in.Nickname,
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// uniqueIBAN draws Greek-format IBANs until one clears the uniqueness check.
func (u *Usecase) uniqueIBAN(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		iban := generateIBAN()
		exists, err := u.repo.ExistsByIBAN(ctx, iban)
		if err != nil {
			return "", err
		}
		if !exists {
			return iban, nil
		}
	}
	return "", errs.ErrConflict
}

func generateIBAN() string {
	const bankCode = "1234"
	return fmt.Sprintf("GR%02d%s%016d", rand.IntN(100), bankCode, rand.Int64N(1e16))
}

func (u *Usecase) Get(ctx context.Context, p auth.Principal, accountID string) (*domainAccount.Account, error) {
	a, err := u.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if !p.IsAdmin() && !p.Owns(a.OwnerID) {
		return nil, errs.ErrNotFound
	}
	return a, nil
}

func (u *Usecase) ListMine(ctx context.Context, ownerID string) ([]domainAccount.Account, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}

func (u *Usecase) ListAll(ctx context.Context, p auth.Principal) ([]domainAccount.Account, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return u.repo.ListAll(ctx)
}

func (u *Usecase) ListPending(ctx context.Context, p auth.Principal) ([]domainAccount.Account, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return u.repo.ListByStatus(ctx, domainAccount.StatusPending)
}

func (u *Usecase) Approve(ctx context.Context, p auth.Principal, accountID string) (*domainAccount.Account, error) {
	return u.applyTransition(ctx, p, accountID, lifecycle.ActionApprove)
}

// Reject removes a pending application outright; accounts keep no rejected
// record the way loans do.
func (u *Usecase) Reject(ctx context.Context, p auth.Principal, accountID string) error {
	_, err := u.applyTransition(ctx, p, accountID, lifecycle.ActionReject)
	return err
}

func (u *Usecase) Toggle(ctx context.Context, p auth.Principal, accountID string) (*domainAccount.Account, error) {
	return u.applyTransition(ctx, p, accountID, lifecycle.ActionToggle)
}

func (u *Usecase) Cancel(ctx context.Context, p auth.Principal, accountID string) (*domainAccount.Account, error) {
	return u.applyTransition(ctx, p, accountID, lifecycle.ActionCancel)
}

func (u *Usecase) applyTransition(ctx context.Context, p auth.Principal, accountID string, action lifecycle.Action) (*domainAccount.Account, error) {
	var out *domainAccount.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		rule, err := lifecycle.Transition(lifecycle.KindAccount, string(a.Status), action, p, a.OwnerID)
		if err != nil {
			return err
		}
		if rule.Remove {
			out = a
			return r.Accounts.Delete(ctx, accountID)
		}
		a.Status = domainAccount.Status(rule.Next)
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, p auth.Principal, accountID string, patch Patch) (*domainAccount.Account, error) {
	if patch.Balance != nil && !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	var out *domainAccount.Account
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if !p.IsAdmin() && !p.Owns(a.OwnerID) {
			return errs.ErrForbidden
		}
		if a.Status.Terminal() {
			return errs.ErrInvalidTransition
		}

		if patch.Nickname != nil {
			a.Nickname = *patch.Nickname
			if err := r.Accounts.Save(ctx, a); err != nil {
				return err
			}
		}
		if patch.Balance != nil {
			if patch.Balance.IsNegative() {
				return errs.Validation("balance", "must not be negative")
			}
			if err := r.Accounts.CompareAndSwapBalance(ctx, a.AccountID, *patch.Balance, a.Version); err != nil {
				return err
			}
			a.Balance = *patch.Balance
			a.Version++
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PermanentDelete removes the account together with its cards and transfer
// history, all in one transaction.
func (u *Usecase) PermanentDelete(ctx context.Context, p auth.Principal, accountID string) error {
	if !p.IsAdmin() {
		return errs.ErrForbidden
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByAccountIDForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if err := r.Cards.DeleteByAccountID(ctx, a.AccountID); err != nil {
			return err
		}
		if err := r.Transfers.DeleteByFromAccountID(ctx, a.AccountID); err != nil {
			return err
		}
		return r.Accounts.Delete(ctx, a.AccountID)
	})
}
