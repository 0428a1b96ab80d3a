package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
	PaymentStatusFailed   = "FAILED"
)

// Payment is a manually recorded payment against a course
type Payment struct {
	ID          string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	PayerName   string     `json:"payerName" gorm:"not null"`
	PayerEmail  string     `json:"payerEmail" gorm:"not null;index"`
	CourseID    string     `json:"courseId" gorm:"type:varchar(36);index"`
	AmountCents int64      `json:"amountCents" gorm:"not null"`
	Currency    string     `json:"currency" gorm:"type:varchar(3);default:'AUD'"`
	Method      string     `json:"method"` // CARD, BANK_TRANSFER, PAYPAL ...
	Reference   string     `json:"reference"`
	Status      string     `json:"status" gorm:"type:varchar(16);default:'PENDING';index"`
	PaidAt      *time.Time `json:"paidAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
