package models

import (
	"time"
)

const (
	RoleFan  = "fan"
	RoleStar = "star"
)

type User struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string    `gorm:"column:username;size:255;not null;index" json:"username"`
	ContactNumber string    `gorm:"column:contact_number;size:20" json:"contact_number"`
	Role          string    `gorm:"column:role;size:20;default:fan" json:"role"`
	StarId        string    `gorm:"column:star_id;size:50" json:"star_id"`
	CoinBalance   float64   `gorm:"column:coin_balance;type:decimal(20,2);default:0.00" json:"coin_balance"`
	Status        int       `gorm:"column:status;default:1" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
