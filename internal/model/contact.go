package model

import "time"

type Contact struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:50;not null;index" json:"name"`
	Surname     string    `gorm:"size:50;not null;index" json:"surname"`
	Email       string    `gorm:"size:150;not null;index" json:"email"`
	PhoneNumber string    `gorm:"size:20;not null" json:"phone_number"`
	Birthday    Date      `gorm:"type:date;not null" json:"birthday"` // Only month and day matter for lookups
	Description string    `gorm:"size:250" json:"description"`
	UserID      uint      `gorm:"index;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
