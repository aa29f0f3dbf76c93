package account

import (
	"github.com/shopspring/decimal"

	domainAccount "github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
)

type CreateInput struct {
	OwnerID  string
	Type     domainAccount.Type
	Nickname string
	Currency string
}

// Patch is the allow-listed field set for account updates. Owners may edit
// the nickname; balance adjustments are admin-only and go through the same
// version CAS as transfer processing.
type Patch struct {
	Nickname *string
	Balance  *decimal.Decimal
}
