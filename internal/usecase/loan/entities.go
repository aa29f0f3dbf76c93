package loan

import "github.com/shopspring/decimal"

type CreateInput struct {
	OwnerID      string
	Principal    decimal.Decimal
	InterestRate decimal.Decimal
	TermMonths   int
	Purpose      string
}

// Patch is the allow-listed field set for loan updates. Numeric edits are
// admin-only, require PENDING status, and recompute the monthly payment.
// Owners may edit the purpose text only.
type Patch struct {
	Purpose      *string
	Principal    *decimal.Decimal
	InterestRate *decimal.Decimal
	TermMonths   *int
	AdminNotes   *string
}

func (p Patch) touchesTerms() bool {
	return p.Principal != nil || p.InterestRate != nil || p.TermMonths != nil
}

func (p Patch) adminOnly() bool {
	return p.touchesTerms() || p.AdminNotes != nil
}
