package accountmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying account.Repository. Fill only
// the fields a test needs; unfilled ones return zero values.
type Repo struct {
	CreateFn                  func(ctx context.Context, a *domain.Account) error
	GetByAccountIDFn          func(ctx context.Context, accountID string) (*domain.Account, error)
	GetByAccountIDForUpdateFn func(ctx context.Context, accountID string) (*domain.Account, error)
	GetByIBANFn               func(ctx context.Context, iban string) (*domain.Account, error)
	ExistsByIBANFn            func(ctx context.Context, iban string) (bool, error)
	SaveFn                    func(ctx context.Context, a *domain.Account) error
	CompareAndSwapBalanceFn   func(ctx context.Context, accountID string, balance decimal.Decimal, expectedVersion uint64) error
	ListByOwnerFn             func(ctx context.Context, ownerID string) ([]domain.Account, error)
	ListAllFn                 func(ctx context.Context) ([]domain.Account, error)
	ListByStatusFn            func(ctx context.Context, status domain.Status) ([]domain.Account, error)
	DeleteFn                  func(ctx context.Context, accountID string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDForUpdateFn != nil {
		return m.GetByAccountIDForUpdateFn(ctx, accountID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	if m.GetByIBANFn != nil {
		return m.GetByIBANFn(ctx, iban)
	}
	return nil, context.Canceled
}

func (m *Repo) ExistsByIBAN(ctx context.Context, iban string) (bool, error) {
	if m.ExistsByIBANFn != nil {
		return m.ExistsByIBANFn(ctx, iban)
	}
	return false, nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) CompareAndSwapBalance(ctx context.Context, accountID string, balance decimal.Decimal, expectedVersion uint64) error {
	if m.CompareAndSwapBalanceFn != nil {
		return m.CompareAndSwapBalanceFn(ctx, accountID, balance, expectedVersion)
	}
	return nil
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Account, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Account, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, accountID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, accountID)
	}
	return nil
}
