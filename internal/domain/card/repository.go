package card

import "context"

type Repository interface {
	Create(ctx context.Context, c *Card) error
	GetByCardID(ctx context.Context, cardID string) (*Card, error)
	GetByCardIDForUpdate(ctx context.Context, cardID string) (*Card, error)
	Save(ctx context.Context, c *Card) error
	ListByOwner(ctx context.Context, ownerID string) ([]Card, error)
	ListAll(ctx context.Context) ([]Card, error)
	ListByStatus(ctx context.Context, status Status) ([]Card, error)
	Delete(ctx context.Context, cardID string) error
	// DeleteByAccountID removes every card attached to an account; the
	// account cascade calls it inside the same transaction.
	DeleteByAccountID(ctx context.Context, accountID string) error
}
