package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRejected LoanStatus = "rejected"
	LoanStatusPaid     LoanStatus = "paid"
)

// Loan represents a client loan. RemainingDebt is initialized to
// principal plus the flat fee and decremented by repayments; TermMonths
// is stored for display only and takes no part in any calculation.
type Loan struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Username      string          `json:"username" gorm:"size:64;not null;index"`
	Principal     decimal.Decimal `json:"principal" gorm:"type:decimal(20,2);not null"`
	TermMonths    int             `json:"term_months" gorm:"not null"`
	Status        LoanStatus      `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	RemainingDebt decimal.Decimal `json:"remaining_debt" gorm:"type:decimal(20,2);not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:Username;references:Username"`
}
