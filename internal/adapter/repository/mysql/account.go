package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/errs"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) Save(ctx context.Context, a *domain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	var out domain.Account
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	var out domain.Account
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ?", accountID).
		First(&out)
	return &out, res.Error
}

func (r *AccountRepository) GetByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	var out domain.Account
	res := r.db.WithContext(ctx).Where("iban = ?", iban).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) ExistsByIBAN(ctx context.Context, iban string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Account{}).Where("iban = ?", iban).Count(&n).Error
	return n > 0, err
}

// CompareAndSwapBalance writes the balance guarded by the optimistic version
// column. A zero-row update means a concurrent writer bumped the version
// first; the caller re-reads and retries.
func (r *AccountRepository) CompareAndSwapBalance(ctx context.Context, accountID string, balance decimal.Decimal, expectedVersion uint64) error {
	res := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("account_id = ? AND version = ?", accountID, expectedVersion).
		Updates(map[string]any{
			"balance": balance,
			"version": expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrConcurrency
	}
	return nil
}

func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	var out []domain.Account
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&out).Error
	return out, err
}

func (r *AccountRepository) ListAll(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *AccountRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Account, error) {
	var out []domain.Account
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&out).Error
	return out, err
}

func (r *AccountRepository) Delete(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&domain.Account{}).Error
}
