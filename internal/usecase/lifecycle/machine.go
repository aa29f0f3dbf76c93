// Package lifecycle holds the one state-machine table shared by the three
// application-resource kinds. Transition rules live in data, not in per-kind
// code, so the kinds cannot drift apart.
package lifecycle

import (
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/card"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/errs"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/loan"
)

type Kind string

const (
	KindAccount Kind = "account"
	KindCard    Kind = "card"
	KindLoan    Kind = "loan"
)

type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionToggle   Action = "toggle"
	ActionCancel   Action = "cancel"
	ActionActivate Action = "activate"
	ActionMarkPaid Action = "mark_paid"
)

// Gate is the actor policy attached to a rule.
type Gate int

const (
	AdminOnly Gate = iota
	OwnerOrAdmin
)

// Rule is one edge of the state diagram. Remove marks reject-while-pending
// for Account/Card, where rejection deletes the application instead of
// retaining a terminal record.
type Rule struct {
	Next   string
	Remove bool
	Gate   Gate
}

var transitions = map[Kind]map[string]map[Action]Rule{
	KindAccount: {
		string(account.StatusPending): {
			ActionApprove: {Next: string(account.StatusActive), Gate: AdminOnly},
			ActionReject:  {Remove: true, Gate: AdminOnly},
			ActionCancel:  {Next: string(account.StatusCancelled), Gate: OwnerOrAdmin},
		},
		string(account.StatusActive): {
			ActionToggle: {Next: string(account.StatusFrozen), Gate: OwnerOrAdmin},
			ActionCancel: {Next: string(account.StatusCancelled), Gate: OwnerOrAdmin},
		},
		string(account.StatusFrozen): {
			ActionToggle: {Next: string(account.StatusActive), Gate: OwnerOrAdmin},
			ActionCancel: {Next: string(account.StatusCancelled), Gate: OwnerOrAdmin},
		},
	},
	KindCard: {
		string(card.StatusPending): {
			ActionApprove: {Next: string(card.StatusActive), Gate: AdminOnly},
			ActionReject:  {Remove: true, Gate: AdminOnly},
			ActionCancel:  {Next: string(card.StatusCancelled), Gate: OwnerOrAdmin},
		},
		string(card.StatusActive): {
			ActionToggle: {Next: string(card.StatusBlocked), Gate: OwnerOrAdmin},
			ActionCancel: {Next: string(card.StatusCancelled), Gate: OwnerOrAdmin},
		},
		string(card.StatusBlocked): {
			ActionToggle: {Next: string(card.StatusActive), Gate: OwnerOrAdmin},
			ActionCancel: {Next: string(card.StatusCancelled), Gate: OwnerOrAdmin},
		},
	},
	KindLoan: {
		string(loan.StatusPending): {
			ActionApprove: {Next: string(loan.StatusApproved), Gate: AdminOnly},
			ActionReject:  {Next: string(loan.StatusRejected), Gate: AdminOnly},
			ActionCancel:  {Next: string(loan.StatusCancelled), Gate: OwnerOrAdmin},
		},
		string(loan.StatusApproved): {
			ActionActivate: {Next: string(loan.StatusActive), Gate: AdminOnly},
			ActionCancel:   {Next: string(loan.StatusCancelled), Gate: OwnerOrAdmin},
		},
		string(loan.StatusActive): {
			ActionMarkPaid: {Next: string(loan.StatusPaid), Gate: AdminOnly},
			ActionCancel:   {Next: string(loan.StatusCancelled), Gate: OwnerOrAdmin},
		},
	},
}

// Transition resolves the rule for (kind, current, action) and enforces its
// actor gate. A missing edge is errs.ErrInvalidTransition with the stored
// status untouched; a failed gate is errs.ErrForbidden.
func Transition(kind Kind, current string, action Action, p auth.Principal, ownerID string) (Rule, error) {
	rule, ok := transitions[kind][current][action]
	if !ok {
		return Rule{}, errs.ErrInvalidTransition
	}
	switch rule.Gate {
	case AdminOnly:
		if !p.IsAdmin() {
			return Rule{}, errs.ErrForbidden
		}
	case OwnerOrAdmin:
		if !p.IsAdmin() && !p.Owns(ownerID) {
			return Rule{}, errs.ErrForbidden
		}
	}
	return rule, nil
}
