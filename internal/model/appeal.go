package model

import "time"

// AppealStatus represents the state of a blocked user's appeal.
type AppealStatus string

const (
	AppealStatusOpen     AppealStatus = "open"
	AppealStatusResolved AppealStatus = "resolved"
)

// Appeal is a blocked user's request for review. Resolving an appeal
// also unblocks the user.
type Appeal struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Username  string       `json:"username" gorm:"size:64;not null;index"`
	Message   string       `json:"message" gorm:"type:text"`
	Status    AppealStatus `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	CreatedAt time.Time    `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:Username;references:Username"`
}
