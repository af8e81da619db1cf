package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents a client's bank account with its synthetic card.
type Account struct {
	ID            uint            `json:"-" gorm:"primaryKey"`
	Number        string          `json:"account_number" gorm:"uniqueIndex;size:16"`
	OwnerUsername string          `json:"owner" gorm:"size:64;not null;index"`
	Type          string          `json:"type" gorm:"size:32;not null"`
	Balance       decimal.Decimal `json:"balance" gorm:"type:decimal(20,2);not null;default:0"`
	CardNumber    string          `json:"card_number" gorm:"size:19;not null"`
	CVV           string          `json:"-" gorm:"size:4;not null"` // Never expose in JSON
	ExpiryDate    string          `json:"expiry_date" gorm:"size:5;not null"` // MM/YY format
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerUsername;references:Username"`
}

// AfterCreate derives the account number from the auto-increment ID so
// that numbers stay unique under concurrent creation. Runs inside the
// insert transaction.
func (a *Account) AfterCreate(tx *gorm.DB) error {
	if a.Number != "" {
		return nil
	}
	a.Number = fmt.Sprintf("KZ%d", 2000+a.ID)
	return tx.Model(a).Update("number", a.Number).Error
}
