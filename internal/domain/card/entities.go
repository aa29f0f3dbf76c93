package card

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeDebit  Type = "DEBIT"
	TypeCredit Type = "CREDIT"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusBlocked   Status = "BLOCKED"
	StatusCancelled Status = "CANCELLED"
)

type Card struct {
	ID           uint64           `gorm:"primaryKey;column:id" json:"-"`
	CardID       string           `gorm:"size:32;uniqueIndex:ux_cards_card_id" json:"card_id"`
	OwnerID      string           `gorm:"size:32;index:idx_cards_owner" json:"owner_id"`
	AccountID    string           `gorm:"size:32;index:idx_cards_account" json:"account_id"`
	Type         Type             `gorm:"size:16;not null" json:"type"`
	MaskedNumber string           `gorm:"size:24;not null" json:"masked_number"`
	ExpiryMonth  int              `gorm:"not null" json:"expiry_month"`
	ExpiryYear   int              `gorm:"not null" json:"expiry_year"`
	Status       Status           `gorm:"size:16;index;not null" json:"status"`
	CreditLimit  *decimal.Decimal `gorm:"type:decimal(15,2)" json:"credit_limit,omitempty"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Card) TableName() string { return "cards" }

func (s Status) Terminal() bool { return s == StatusCancelled }
