package models

import (
	"time"
)

// PaymentMethod holds the credentials and base URL for an external payment
// provider (currently only azampay).
type PaymentMethod struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Provider    string    `gorm:"column:provider;size:50;not null;index" json:"provider"`
	DisplayName string    `gorm:"column:display_name;size:255" json:"display_name"`
	BaseUrl     string    `gorm:"column:base_url;size:255" json:"base_url"`
	AppName     string    `gorm:"column:app_name;size:255" json:"app_name"`
	ClientKey   string    `gorm:"column:client_key;size:255" json:"client_key"`
	SecretKey   string    `gorm:"column:secret_key;size:512" json:"secret_key"`
	Status      int       `gorm:"column:status;default:1" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
