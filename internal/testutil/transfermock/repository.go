package transfermock

import (
	"context"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/transfer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying transfer.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, t *domain.Transfer) error
	GetByTransferIDFn          func(ctx context.Context, transferID string) (*domain.Transfer, error)
	GetByTransferIDForUpdateFn func(ctx context.Context, transferID string) (*domain.Transfer, error)
	SaveFn                     func(ctx context.Context, t *domain.Transfer) error
	ListByOwnerFn              func(ctx context.Context, ownerID string) ([]domain.Transfer, error)
	ListAllFn                  func(ctx context.Context) ([]domain.Transfer, error)
	ListByStatusFn             func(ctx context.Context, status domain.Status) ([]domain.Transfer, error)
	DeleteFn                   func(ctx context.Context, transferID string) error
	DeleteByFromAccountIDFn    func(ctx context.Context, accountID string) error
}

func (m *Repo) Create(ctx context.Context, t *domain.Transfer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTransferID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	if m.GetByTransferIDFn != nil {
		return m.GetByTransferIDFn(ctx, transferID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByTransferIDForUpdate(ctx context.Context, transferID string) (*domain.Transfer, error) {
	if m.GetByTransferIDForUpdateFn != nil {
		return m.GetByTransferIDForUpdateFn(ctx, transferID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, t *domain.Transfer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Transfer, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Transfer, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Transfer, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, transferID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, transferID)
	}
	return nil
}

func (m *Repo) DeleteByFromAccountID(ctx context.Context, accountID string) error {
	if m.DeleteByFromAccountIDFn != nil {
		return m.DeleteByFromAccountIDFn(ctx, accountID)
	}
	return nil
}
