package models

import (
	"time"
)

// Entity workflow statuses shared by the payment-bearing entities.
const (
	EntityPending   = "pending"
	EntityApproved  = "approved"
	EntityCompleted = "completed"
	EntityCancelled = "cancelled"
)

// Payment-status mirror values. These track the linked transaction, not the
// booking workflow: "pending" means escrowed and awaiting service completion.
const (
	PayInitiated = "initiated"
	PayPending   = "pending"
	PayCompleted = "completed"
	PayRefunded  = "refunded"
)

type Appointment struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	FanId         int       `gorm:"column:fan_id;not null;index" json:"fan_id"`
	StarId        int       `gorm:"column:star_id;not null;index" json:"star_id"`
	TransactionId int       `gorm:"column:transaction_id;index" json:"transaction_id"`
	SlotId        int       `gorm:"column:slot_id" json:"slot_id"`
	Date          string    `gorm:"column:date;size:20" json:"date"`
	StartTime     string    `gorm:"column:start_time;size:10" json:"start_time"`
	EndTime       string    `gorm:"column:end_time;size:10" json:"end_time"`
	Status        string    `gorm:"column:status;size:20;default:pending" json:"status"`
	PaymentStatus string    `gorm:"column:payment_status;size:20;default:initiated" json:"payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}
