package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *domain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *domain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	var out domain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	var out domain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Loan, error) {
	var out []domain.Loan
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]domain.Loan, error) {
	var out []domain.Loan
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Loan, error) {
	var out []domain.Loan
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&out).Error
	return out, err
}

func (r *LoanRepository) Delete(ctx context.Context, loanID string) error {
	return r.db.WithContext(ctx).Where("loan_id = ?", loanID).Delete(&domain.Loan{}).Error
}
