package models

import (
	"time"
)

type Rating struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StarId    int       `gorm:"column:star_id;not null;uniqueIndex" json:"star_id"`
	Average   float64   `gorm:"column:average;type:decimal(3,1);default:0.0" json:"average"`
	Count     int       `gorm:"column:count;default:0" json:"count"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}
