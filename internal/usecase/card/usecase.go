package card

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"gorm.io/gorm"

	domainAccount "github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
	domainCard "github.com/williamkalogeropoulos/AegisBank/internal/domain/card"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/errs"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/uow"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/lifecycle"
	"github.com/williamkalogeropoulos/AegisBank/pkg/id"
)

// cardValidityYears: expiry is stamped this far past issuance.
const cardValidityYears = 3

type Usecase struct {
	repo     domainCard.Repository
	accounts domainAccount.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(r domainCard.Repository, accounts domainAccount.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, accounts: accounts, uow: tx}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domainCard.Card, error) {
	if in.OwnerID == "" {
		return nil, errs.Validation("owner_id", "is required")
	}
	if in.Type != domainCard.TypeDebit && in.Type != domainCard.TypeCredit {
		return nil, errs.Validation("type", "must be DEBIT or CREDIT")
	}
	if in.Type == domainCard.TypeCredit {
		if in.CreditLimit == nil || !in.CreditLimit.IsPositive() {
			return nil, errs.Validation("credit_limit", "is required for credit cards and must be greater than 0")
		}
	} else if in.CreditLimit != nil {
		return nil, errs.Validation("credit_limit", "is only valid for credit cards")
	}

	a, err := u.accounts.GetByAccountID(ctx, in.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if a.OwnerID != in.OwnerID {
		return nil, errs.ErrForbidden
	}

	expiry := time.Now().UTC().AddDate(cardValidityYears, 0, 0)
	c := &domainCard.Card{
		CardID:       id.New32(),
		OwnerID:      in.OwnerID,
		AccountID:    in.AccountID,
		Type:         in.Type,
		MaskedNumber: maskedNumber(),
		ExpiryMonth:  int(expiry.Month()),
		ExpiryYear:   expiry.Year(),
		Status:       domainCard.StatusPending,
		CreditLimit:  in.CreditLimit,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Only the last four digits survive issuance; the real PAN never exists here.
func maskedNumber() string {
	return fmt.Sprintf("**** **** **** %04d", 1000+rand.IntN(9000))
}

func (u *Usecase) Get(ctx context.Context, p auth.Principal, cardID string) (*domainCard.Card, error) {
	c, err := u.repo.GetByCardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if !p.IsAdmin() && !p.Owns(c.OwnerID) {
		return nil, errs.ErrNotFound
	}
	return c, nil
}

func (u *Usecase) ListMine(ctx context.Context, ownerID string) ([]domainCard.Card, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}

func (u *Usecase) ListAll(ctx context.Context, p auth.Principal) ([]domainCard.Card, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return u.repo.ListAll(ctx)
}

func (u *Usecase) ListPending(ctx context.Context, p auth.Principal) ([]domainCard.Card, error) {
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return u.repo.ListByStatus(ctx, domainCard.StatusPending)
}

func (u *Usecase) Approve(ctx context.Context, p auth.Principal, cardID string) (*domainCard.Card, error) {
	return u.applyTransition(ctx, p, cardID, lifecycle.ActionApprove)
}

func (u *Usecase) Reject(ctx context.Context, p auth.Principal, cardID string) error {
	_, err := u.applyTransition(ctx, p, cardID, lifecycle.ActionReject)
	return err
}

func (u *Usecase) Toggle(ctx context.Context, p auth.Principal, cardID string) (*domainCard.Card, error) {
	return u.applyTransition(ctx, p, cardID, lifecycle.ActionToggle)
}

func (u *Usecase) Cancel(ctx context.Context, p auth.Principal, cardID string) (*domainCard.Card, error) {
	return u.applyTransition(ctx, p, cardID, lifecycle.ActionCancel)
}

func (u *Usecase) applyTransition(ctx context.Context, p auth.Principal, cardID string, action lifecycle.Action) (*domainCard.Card, error) {
	var out *domainCard.Card
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Cards.GetByCardIDForUpdate(ctx, cardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		rule, err := lifecycle.Transition(lifecycle.KindCard, string(c.Status), action, p, c.OwnerID)
		if err != nil {
			return err
		}
		if rule.Remove {
			out = c
			return r.Cards.Delete(ctx, cardID)
		}
		c.Status = domainCard.Status(rule.Next)
		if err := r.Cards.Save(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, p auth.Principal, cardID string, patch Patch) (*domainCard.Card, error) {
	if patch.CreditLimit == nil {
		return nil, errs.Validation("credit_limit", "nothing to update")
	}
	if !p.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	var out *domainCard.Card
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Cards.GetByCardIDForUpdate(ctx, cardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if c.Status.Terminal() {
			return errs.ErrInvalidTransition
		}
		if c.Type != domainCard.TypeCredit {
			return errs.Validation("credit_limit", "is only valid for credit cards")
		}
		if !patch.CreditLimit.IsPositive() {
			return errs.Validation("credit_limit", "must be greater than 0")
		}
		c.CreditLimit = patch.CreditLimit
		if err := r.Cards.Save(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) PermanentDelete(ctx context.Context, p auth.Principal, cardID string) error {
	if !p.IsAdmin() {
		return errs.ErrForbidden
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Cards.GetByCardIDForUpdate(ctx, cardID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		return r.Cards.Delete(ctx, cardID)
	})
}
