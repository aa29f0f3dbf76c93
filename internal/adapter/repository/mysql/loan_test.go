package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domain "github.com/williamkalogeropoulos/AegisBank/internal/domain/loan"
	"github.com/williamkalogeropoulos/AegisBank/pkg/id"
)

func makeLoan(loanID, ownerID string) *domain.Loan {
	return &domain.Loan{
		LoanID:         loanID,
		OwnerID:        ownerID,
		Principal:      dec("10000.00"),
		InterestRate:   dec("0.06"),
		TermMonths:     60,
		Status:         domain.StatusPending,
		MonthlyPayment: dec("193.33"),
		Purpose:        "renovation",
	}
}

func TestLoanCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.New32()
	ownerID := id.New32()
	if err := repo.Create(ctx, makeLoan(loanID, ownerID)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.OwnerID != ownerID || !got.MonthlyPayment.Equal(dec("193.33")) {
		t.Errorf("unexpected loan: %+v", got)
	}
}

func TestLoanSaveStatusAndNotes(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.New32(), id.New32())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.Status = domain.StatusRejected
	l.AdminNotes = "income not verifiable"
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != domain.StatusRejected || got.AdminNotes != "income not verifiable" {
		t.Errorf("unexpected loan after save: %+v", got)
	}
}

func TestLoanListByStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	pending := makeLoan(id.New32(), id.New32())
	active := makeLoan(id.New32(), id.New32())
	active.Status = domain.StatusActive
	for _, l := range []*domain.Loan{pending, active} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(got) != 1 || got[0].LoanID != pending.LoanID {
		t.Errorf("unexpected pending list: %+v", got)
	}
}

func TestLoanDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.New32(), id.New32())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, l.LoanID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByLoanID(ctx, l.LoanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
