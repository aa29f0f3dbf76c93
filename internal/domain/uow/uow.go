package uow

import (
	"context"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/card"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/loan"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/transfer"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Accounts  account.Repository
	Cards     card.Repository
	Loans     loan.Repository
	Transfers transfer.Repository
}

// UnitOfWork runs fn inside a single storage transaction. Every lifecycle
// transition re-checks its precondition through the repos it receives here,
// so a losing concurrent racer fails instead of overwriting.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
