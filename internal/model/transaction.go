package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind classifies a ledger log entry.
type TransactionKind string

const (
	TransactionDeposit       TransactionKind = "DEPOSIT"
	TransactionTransferIn    TransactionKind = "TRANSFER_IN"
	TransactionTransferOut   TransactionKind = "TRANSFER_OUT"
	TransactionLoanApproved  TransactionKind = "LOAN_APPROVED"
	TransactionLoanRepayment TransactionKind = "LOAN_REPAYMENT"
)

// Transaction is an append-only ledger log entry. Entries are never
// mutated or deleted; the two legs of a transfer share one Timestamp.
type Transaction struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	AccountNumber string          `json:"account_number" gorm:"size:16;not null;index"`
	Kind          TransactionKind `json:"kind" gorm:"type:varchar(20);not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Description   string          `json:"description" gorm:"size:255"`
	Timestamp     time.Time       `json:"timestamp" gorm:"not null;index"`
	CreatedAt     time.Time       `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
