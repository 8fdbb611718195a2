package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	Id           string `gorm:"primaryKey"`
	Email        string `gorm:"index"`
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
