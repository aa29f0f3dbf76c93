package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// WithinTx runs fn in one db transaction, handing it repos bound to the tx.
// Row locks taken through the ForUpdate getters hold until commit/rollback.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Accounts:  &AccountRepository{db: tx},
			Cards:     &CardRepository{db: tx},
			Loans:     &LoanRepository{db: tx},
			Transfers: &TransferRepository{db: tx},
		}
		return fn(r)
	})
}
