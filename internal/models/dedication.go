package models

import (
	"time"
)

type DedicationRequest struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	FanId         int       `gorm:"column:fan_id;not null;index" json:"fan_id"`
	StarId        int       `gorm:"column:star_id;not null;index" json:"star_id"`
	TransactionId int       `gorm:"column:transaction_id;index" json:"transaction_id"`
	Occasion      string    `gorm:"column:occasion;size:255" json:"occasion"`
	Instructions  string    `gorm:"column:instructions;type:text" json:"instructions"`
	VideoUrl      string    `gorm:"column:video_url;size:512" json:"video_url"`
	Status        string    `gorm:"column:status;size:20;default:pending" json:"status"`
	PaymentStatus string    `gorm:"column:payment_status;size:20;default:initiated" json:"payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DedicationRequest) TableName() string {
	return "dedication_requests"
}
