package account

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByAccountID(ctx context.Context, accountID string) (*Account, error)
	// GetByAccountIDForUpdate locks the row for the duration of the enclosing
	// transaction.
	GetByAccountIDForUpdate(ctx context.Context, accountID string) (*Account, error)
	GetByIBAN(ctx context.Context, iban string) (*Account, error)
	ExistsByIBAN(ctx context.Context, iban string) (bool, error)
	Save(ctx context.Context, a *Account) error
	// CompareAndSwapBalance writes balance only if the stored version still
	// equals expectedVersion, bumping the version on success. Returns
	// errs.ErrConcurrency when a concurrent writer won.
	CompareAndSwapBalance(ctx context.Context, accountID string, balance decimal.Decimal, expectedVersion uint64) error
	ListByOwner(ctx context.Context, ownerID string) ([]Account, error)
	ListAll(ctx context.Context) ([]Account, error)
	ListByStatus(ctx context.Context, status Status) ([]Account, error)
	Delete(ctx context.Context, accountID string) error
}
