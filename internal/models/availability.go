package models

import (
	"time"
)

// Slot statuses
const (
	SlotAvailable   = "available"
	SlotLocked      = "locked"
	SlotUnavailable = "unavailable"
)

type Availability struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StarId    int       `gorm:"column:star_id;not null;index" json:"star_id"`
	Date      string    `gorm:"column:date;size:20;not null" json:"date"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Availability) TableName() string {
	return "availabilities"
}

// TimeSlot is a bookable window under an Availability. While a payment is in
// flight the slot is "locked" and carries the gateway reference; the slot
// reconciliation sweep resolves it to unavailable or back to available.
type TimeSlot struct {
	ID                 int        `gorm:"primaryKey;autoIncrement" json:"id"`
	AvailabilityId     int        `gorm:"column:availability_id;not null;index" json:"availability_id"`
	StartTime          string     `gorm:"column:start_time;size:10;not null" json:"start_time"`
	EndTime            string     `gorm:"column:end_time;size:10;not null" json:"end_time"`
	Status             string     `gorm:"column:status;size:20;default:available;index" json:"status"`
	PaymentReferenceId *string    `gorm:"column:payment_reference_id;size:255;index" json:"payment_reference_id"`
	LockedAt           *time.Time `gorm:"column:locked_at" json:"locked_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}
