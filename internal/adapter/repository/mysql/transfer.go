package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/transfer"
)

type TransferRepository struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) *TransferRepository { return &TransferRepository{db: db} }

func (r *TransferRepository) Create(ctx context.Context, t *domain.Transfer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransferRepository) Save(ctx context.Context, t *domain.Transfer) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TransferRepository) GetByTransferID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	var out domain.Transfer
	res := r.db.WithContext(ctx).Where("transfer_id = ?", transferID).First(&out)
	return &out, res.Error
}

func (r *TransferRepository) GetByTransferIDForUpdate(ctx context.Context, transferID string) (*domain.Transfer, error) {
	var out domain.Transfer
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("transfer_id = ?", transferID).
		First(&out)
	return &out, res.Error
}

func (r *TransferRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Transfer, error) {
	var out []domain.Transfer
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *TransferRepository) ListAll(ctx context.Context) ([]domain.Transfer, error) {
	var out []domain.Transfer
	err := r.db.WithContext(ctx).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *TransferRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Transfer, error) {
	var out []domain.Transfer
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *TransferRepository) Delete(ctx context.Context, transferID string) error {
	return r.db.WithContext(ctx).Where("transfer_id = ?", transferID).Delete(&domain.Transfer{}).Error
}

func (r *TransferRepository) DeleteByFromAccountID(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).Where("from_account_id = ?", accountID).Delete(&domain.Transfer{}).Error
}
