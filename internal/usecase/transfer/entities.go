package transfer

import "github.com/shopspring/decimal"

type CreateInput struct {
	OwnerID       string
	FromAccountID string
	// Exactly one of ToIBAN / ToAccountID names the destination. ToAccountID
	// is the inter-account form and must be another account of the caller.
	ToIBAN      string
	ToAccountID *string
	Amount      decimal.Decimal
	Description string
	Category    string
}

// Patch is the allow-listed field set for pending transfers. Destination and
// type are fixed at creation; an amount change recomputes fee and total.
type Patch struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
}
