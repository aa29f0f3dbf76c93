package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusActive    Status = "ACTIVE"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// Loan bounds enforced on create and on admin numeric edits.
var (
	MinPrincipal    = decimal.NewFromInt(100)
	MaxPrincipal    = decimal.NewFromInt(100_000)
	MaxInterestRate = decimal.RequireFromString("0.25")
)

const MaxTermMonths = 360

type Loan struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID         string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	OwnerID        string          `gorm:"size:32;index:idx_loans_owner" json:"owner_id"`
	Principal      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principal"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"interest_rate"`
	TermMonths     int             `gorm:"not null" json:"term_months"`
	Status         Status          `gorm:"size:16;index;not null" json:"status"`
	MonthlyPayment decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monthly_payment"`
	Purpose        string          `gorm:"size:128" json:"purpose,omitempty"`
	AdminNotes     string          `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusPaid || s == StatusCancelled
}
