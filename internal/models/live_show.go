package models

import (
	"time"
)

type LiveShow struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	HostId        int       `gorm:"column:host_id;not null;index" json:"host_id"`
	TransactionId int       `gorm:"column:transaction_id;index" json:"transaction_id"`
	Title         string    `gorm:"column:title;size:255" json:"title"`
	ScheduledAt   time.Time `gorm:"column:scheduled_at" json:"scheduled_at"`
	TicketPrice   float64   `gorm:"column:ticket_price;type:decimal(20,2);default:0.00" json:"ticket_price"`
	Status        string    `gorm:"column:status;size:20;default:pending" json:"status"`
	PaymentStatus string    `gorm:"column:payment_status;size:20;default:initiated" json:"payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LiveShow) TableName() string {
	return "live_shows"
}

type LiveShowAttendance struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ShowId        int       `gorm:"column:show_id;not null;index" json:"show_id"`
	UserId        int       `gorm:"column:user_id;not null;index" json:"user_id"`
	TransactionId int       `gorm:"column:transaction_id;index" json:"transaction_id"`
	Status        string    `gorm:"column:status;size:20;default:pending" json:"status"`
	PaymentStatus string    `gorm:"column:payment_status;size:20;default:initiated" json:"payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LiveShowAttendance) TableName() string {
	return "live_show_attendances"
}
