package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeExternal     Type = "EXTERNAL"
	TypeInternal     Type = "INTERNAL"
	TypeInterAccount Type = "INTER_ACCOUNT"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// ExternalFee is charged per transfer leaving the bank. Internal and
// inter-account transfers are free.
var ExternalFee = decimal.RequireFromString("0.50")

// FeeFor returns the fee for a transfer type.
func FeeFor(t Type) decimal.Decimal {
	if t == TypeExternal {
		return ExternalFee
	}
	return decimal.Zero
}

// Transfer records one requested movement of funds. TotalAmount is always
// Amount + Fee; balances are untouched until processing.
type Transfer struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	TransferID    string          `gorm:"size:32;uniqueIndex:ux_transfers_transfer_id" json:"transfer_id"`
	OwnerID       string          `gorm:"size:32;index:idx_transfers_owner" json:"owner_id"`
	FromAccountID string          `gorm:"size:32;index:idx_transfers_from_account" json:"from_account_id"`
	ToIBAN        string          `gorm:"column:to_iban;size:34;not null" json:"to_iban"`
	ToAccountID   *string         `gorm:"size:32" json:"to_account_id,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Fee           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"fee"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	Currency      string          `gorm:"size:3;not null" json:"currency"`
	Type          Type            `gorm:"size:16;not null" json:"type"`
	Status        Status          `gorm:"size:16;index;not null" json:"status"`
	Description   string          `gorm:"size:255" json:"description,omitempty"`
	Category      string          `gorm:"size:64" json:"category,omitempty"`
	Reference     string          `gorm:"size:36;uniqueIndex:ux_transfers_reference" json:"reference"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transfer) TableName() string { return "transfers" }

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}
