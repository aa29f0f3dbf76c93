package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	ListByOwner(ctx context.Context, ownerID string) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	Delete(ctx context.Context, loanID string) error
}
