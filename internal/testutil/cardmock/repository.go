package cardmock

import (
	"context"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/card"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying card.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, c *domain.Card) error
	GetByCardIDFn          func(ctx context.Context, cardID string) (*domain.Card, error)
	GetByCardIDForUpdateFn func(ctx context.Context, cardID string) (*domain.Card, error)
	SaveFn                 func(ctx context.Context, c *domain.Card) error
	ListByOwnerFn          func(ctx context.Context, ownerID string) ([]domain.Card, error)
	ListAllFn              func(ctx context.Context) ([]domain.Card, error)
	ListByStatusFn         func(ctx context.Context, status domain.Status) ([]domain.Card, error)
	DeleteFn               func(ctx context.Context, cardID string) error
	DeleteByAccountIDFn    func(ctx context.Context, accountID string) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Card) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCardID(ctx context.Context, cardID string) (*domain.Card, error) {
	if m.GetByCardIDFn != nil {
		return m.GetByCardIDFn(ctx, cardID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByCardIDForUpdate(ctx context.Context, cardID string) (*domain.Card, error) {
	if m.GetByCardIDForUpdateFn != nil {
		return m.GetByCardIDForUpdateFn(ctx, cardID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Card) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Card, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Card, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Card, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, cardID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, cardID)
	}
	return nil
}

func (m *Repo) DeleteByAccountID(ctx context.Context, accountID string) error {
	if m.DeleteByAccountIDFn != nil {
		return m.DeleteByAccountIDFn(ctx, accountID)
	}
	return nil
}
