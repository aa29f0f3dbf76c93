package transfer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainAccount "github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/errs"
	domainTransfer "github.com/williamkalogeropoulos/AegisBank/internal/domain/transfer"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/uow"
	"github.com/williamkalogeropoulos/AegisBank/pkg/id"
)

// casAttempts bounds the retry loop around a lost balance CAS before the
// caller sees a retryable ErrConcurrency.
const casAttempts = 3

type Usecase struct {
	repo     domainTransfer.Repository
	accounts domainAccount.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(r domainTransfer.Repository, accounts domainAccount.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, accounts: accounts, uow: tx}
}

// Create validates and persists a PENDING transfer. No balance moves here;
// funds are only touched by Process.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domainTransfer.Transfer, error) {
	if in.OwnerID == "" {
		return nil, errs.Validation("owner_id", "is required")
	}
	if !in.Amount.IsPositive() {
		return nil, errs.Validation("amount", "must be greater than 0")
	}
	if in.ToIBAN == "" && in.ToAccountID == nil {
		return nil, errs.Validation("to_iban", "destination is required")
	}

	from, err := u.accounts.GetByAccountID(ctx, in.FromAccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if from.OwnerID != in.OwnerID {
		return nil, errs.ErrForbidden
	}
	if from.Status != domainAccount.StatusActive {
		return nil, errs.Validation("from_account_id", "account must be active")
	}

	t := &domainTransfer.Transfer{
		TransferID:    id.New32(),
		OwnerID:       in.OwnerID,
		FromAccountID: in.FromAccountID,
		Amount:        in.Amount,
		Currency:      from.Currency,
		Status:        domainTransfer.StatusPending,
		Description:   in.Description,
		Category:      in.Category,
		Reference:     uuid.NewString(),
	}

	if err := u.resolveDestination(ctx, in, t); err != nil {
		return nil, err
	}
	t.Fee = domainTransfer.FeeFor(t.Type)
	t.TotalAmount = t.Amount.Add(t.Fee)

	if err := u.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// resolveDestination fixes the transfer type at creation time: the caller's
// own second account is INTER_ACCOUNT, an IBAN held by this bank is INTERNAL,
// anything else leaves the bank as EXTERNAL.
func (u *Usecase) resolveDestination(ctx context.Context, in CreateInput, t *domainTransfer.Transfer) error {
	if in.ToAccountID != nil {
		to, err := u.accounts.GetByAccountID(ctx, *in.ToAccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Validation("to_account_id", "destination account not found")
			}
			return err
		}
		if to.OwnerID != in.OwnerID {
			return errs.Validation("to_account_id", "destination must be one of your own accounts")
		}
		if *in.ToAccountID == in.FromAccountID {
			return errs.Validation("to_account_id", "cannot transfer to the same account")
		}
		t.Type = domainTransfer.TypeInterAccount
		t.ToIBAN = to.IBAN
		t.ToAccountID = in.ToAccountID
		return nil
	}

	t.ToIBAN = in.ToIBAN
	to, err := u.accounts.GetByIBAN(ctx, in.ToIBAN)
	switch {
	case err == nil:
		if to.AccountID == in.FromAccountID {
			return errs.Validation("to_iban", "cannot transfer to the same account")
		}
		t.Type = domainTransfer.TypeInternal
	case errors.Is(err, gorm.ErrRecordNotFound):
		t.Type = domainTransfer.TypeExternal
	default:
		return err
	}
	return nil
}

// Process executes a pending transfer atomically: deduct total (amount+fee)
// from the source, credit the destination where one exists inside the bank,
// mark COMPLETED. A short balance is the one terminal failure; any other
// error rolls the transaction back and leaves the transfer PENDING so it can
// be retried. Lost CAS races retry a bounded number of times.
func (u *Usecase) Process(ctx context.Context, p auth.Principal, transferID string) (*domainTransfer.Transfer, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}

	var out *domainTransfer.Transfer
	var attemptErr error
	for i := 0; i < casAttempts; i++ {
		out, attemptErr = u.processOnce(ctx, transferID)
		if !errors.Is(attemptErr, errs.ErrConcurrency) {
			break
		}
	}
	if attemptErr != nil {
		return nil, attemptErr
	}
	return out, nil
}

func (u *Usecase) processOnce(ctx context.Context, transferID string) (*domainTransfer.Transfer, error) {
	var out *domainTransfer.Transfer
	var shortFunds bool

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := r.Transfers.GetByTransferIDForUpdate(ctx, transferID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if t.Status != domainTransfer.StatusPending {
			return errs.ErrInvalidTransition
		}

		from, err := r.Accounts.GetByAccountIDForUpdate(ctx, t.FromAccountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}

		if from.Balance.LessThan(t.TotalAmount) {
			// The only terminal failure. Commit the FAILED mark on its own;
			// balances stay untouched.
			t.Status = domainTransfer.StatusFailed
			if err := r.Transfers.Save(ctx, t); err != nil {
				return err
			}
			shortFunds = true
			out = t
			return nil
		}

		debited := from.Balance.Sub(t.TotalAmount)
		if err := r.Accounts.CompareAndSwapBalance(ctx, from.AccountID, debited, from.Version); err != nil {
			return err
		}

		switch t.Type {
		case domainTransfer.TypeInterAccount:
			to, err := r.Accounts.GetByAccountIDForUpdate(ctx, *t.ToAccountID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.Validation("to_account_id", "destination account not found")
				}
				return err
			}
			if to.OwnerID != t.OwnerID {
				return errs.Validation("to_account_id", "destination must belong to the same owner")
			}
			if to.Status != domainAccount.StatusActive {
				return errs.Validation("to_account_id", "destination account must be active")
			}
			// The fee is not credited on.
			if err := r.Accounts.CompareAndSwapBalance(ctx, to.AccountID, to.Balance.Add(t.Amount), to.Version); err != nil {
				return err
			}
		case domainTransfer.TypeInternal:
			to, err := r.Accounts.GetByIBAN(ctx, t.ToIBAN)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				if err := r.Accounts.CompareAndSwapBalance(ctx, to.AccountID, to.Balance.Add(t.Amount), to.Version); err != nil {
					return err
				}
			}
		}

		t.Status = domainTransfer.StatusCompleted
		if err := r.Transfers.Save(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	if shortFunds {
		return out, errs.ErrInsufficientFunds
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, p auth.Principal, transferID string) (*domainTransfer.Transfer, error) {
	t, err := u.repo.GetByTransferID(ctx, transferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if !p.IsAdmin() && !p.Owns(t.OwnerID) {
		return nil, errs.ErrNotFound
	}
	return t, nil
}

func (u *Usecase) ListMine(ctx context.Context, ownerID string) ([]domainTransfer.Transfer, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}

func (u *Usecase) ListAll(ctx context.Context, p auth.Principal) ([]domainTransfer.Transfer, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return u.repo.ListAll(ctx)
}

func (u *Usecase) ListPending(ctx context.Context, p auth.Principal) ([]domainTransfer.Transfer, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return u.repo.ListByStatus(ctx, domainTransfer.StatusPending)
}

// Cancel withdraws a pending transfer. Balances are untouched until Process,
// so there is nothing to refund.
func (u *Usecase) Cancel(ctx context.Context, p auth.Principal, transferID string) (*domainTransfer.Transfer, error) {
	var out *domainTransfer.Transfer
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.pendingForWrite(ctx, r, p, transferID)
		if err != nil {
			return err
		}
		t.Status = domainTransfer.StatusCancelled
		if err := r.Transfers.Save(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, p auth.Principal, transferID string, patch Patch) (*domainTransfer.Transfer, error) {
	var out *domainTransfer.Transfer
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.pendingForWrite(ctx, r, p, transferID)
		if err != nil {
			return err
		}
		if patch.Amount != nil {
			if !patch.Amount.IsPositive() {
				return errs.Validation("amount", "must be greater than 0")
			}
			t.Amount = *patch.Amount
			t.Fee = domainTransfer.FeeFor(t.Type)
			t.TotalAmount = t.Amount.Add(t.Fee)
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Category != nil {
			t.Category = *patch.Category
		}
		if err := r.Transfers.Save(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a pending transfer. Completed transfers are immutable audit
// records and are refused here regardless of role.
func (u *Usecase) Delete(ctx context.Context, p auth.Principal, transferID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		t, err := u.pendingForWrite(ctx, r, p, transferID)
		if err != nil {
			return err
		}
		return r.Transfers.Delete(ctx, t.TransferID)
	})
}

// pendingForWrite loads a transfer under lock and enforces the shared
// preconditions of cancel/update/delete: visible to the caller, still PENDING.
func (u *Usecase) pendingForWrite(ctx context.Context, r uow.Repos, p auth.Principal, transferID string) (*domainTransfer.Transfer, error) {
	t, err := r.Transfers.GetByTransferIDForUpdate(ctx, transferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if !p.IsAdmin() && !p.Owns(t.OwnerID) {
		return nil, errs.ErrNotFound
	}
	if t.Status != domainTransfer.StatusPending {
		return nil, errs.ErrInvalidTransition
	}
	return t, nil
}
