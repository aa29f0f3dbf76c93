package account

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeChecking Type = "CHECKING"
	TypeSavings  Type = "SAVINGS"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusFrozen    Status = "FROZEN"
	StatusCancelled Status = "CANCELLED"
)

// Account carries a Version column: balance writes go through a
// compare-and-swap on it so two concurrent transfer processings cannot both
// spend the same funds.
type Account struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	AccountID string          `gorm:"size:32;uniqueIndex:ux_accounts_account_id" json:"account_id"`
	OwnerID   string          `gorm:"size:32;index:idx_accounts_owner" json:"owner_id"`
	Type      Type            `gorm:"size:16;not null" json:"type"`
	IBAN      string          `gorm:"column:iban;size:34;uniqueIndex:ux_accounts_iban" json:"iban"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	Currency  string          `gorm:"size:3;not null" json:"currency"`
	Status    Status          `gorm:"size:16;index;not null" json:"status"`
	Nickname  string          `gorm:"size:64" json:"nickname,omitempty"`
	Version   uint64          `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool { return s == StatusCancelled }
