package models

import (
	"time"

	"gorm.io/gorm"
)

// Url maps a short code to its destination. OwnerId is nil for records created
// anonymously; such records cannot be changed through the owner-scoped API.
type Url struct {
	Id        string `gorm:"primaryKey"`
	LongUrl   string
	ShortCode string  `gorm:"index"`
	OwnerId   *string `gorm:"index"`
	Clicks    int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
