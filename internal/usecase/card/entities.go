package card

import (
	"github.com/shopspring/decimal"

	domainCard "github.com/williamkalogeropoulos/AegisBank/internal/domain/card"
)

type CreateInput struct {
	OwnerID     string
	AccountID   string
	Type        domainCard.Type
	CreditLimit *decimal.Decimal
}

// Patch is the allow-listed field set for card updates; the credit limit is
// the only mutable field and only an admin may touch it.
type Patch struct {
	CreditLimit *decimal.Decimal
}
