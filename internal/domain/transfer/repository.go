package transfer

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transfer) error
	GetByTransferID(ctx context.Context, transferID string) (*Transfer, error)
	GetByTransferIDForUpdate(ctx context.Context, transferID string) (*Transfer, error)
	Save(ctx context.Context, t *Transfer) error
	ListByOwner(ctx context.Context, ownerID string) ([]Transfer, error)
	ListAll(ctx context.Context) ([]Transfer, error)
	ListByStatus(ctx context.Context, status Status) ([]Transfer, error)
	Delete(ctx context.Context, transferID string) error
	// DeleteByFromAccountID removes the transfer history of an account being
	// permanently deleted.
	DeleteByFromAccountID(ctx context.Context, accountID string) error
}
