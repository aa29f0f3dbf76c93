package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/card"
)

type CardRepository struct{ db *gorm.DB }

func NewCardRepository(db *gorm.DB) *CardRepository { return &CardRepository{db: db} }

func (r *CardRepository) Create(ctx context.Context, c *domain.Card) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CardRepository) Save(ctx context.Context, c *domain.Card) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CardRepository) GetByCardID(ctx context.Context, cardID string) (*domain.Card, error) {
	var out domain.Card
	res := r.db.WithContext(ctx).Where("card_id = ?", cardID).First(&out)
	return &out, res.Error
}

func (r *CardRepository) GetByCardIDForUpdate(ctx context.Context, cardID string) (*domain.Card, error) {
	var out domain.Card
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("card_id = ?", cardID).
		First(&out)
	return &out, res.Error
}

func (r *CardRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Card, error) {
	var out []domain.Card
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&out).Error
	return out, err
}

func (r *CardRepository) ListAll(ctx context.Context) ([]domain.Card, error) {
	var out []domain.Card
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *CardRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Card, error) {
	var out []domain.Card
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&out).Error
	return out, err
}

func (r *CardRepository) Delete(ctx context.Context, cardID string) error {
	return r.db.WithContext(ctx).Where("card_id = ?", cardID).Delete(&domain.Card{}).Error
}

func (r *CardRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&domain.Card{}).Error
}
