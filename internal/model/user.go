// Package model defines database models
package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:50;not null" json:"username"`
	Email        string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"` // argon2id PHC string
	Confirmed    bool      `gorm:"default:false" json:"confirmed"`
	RefreshToken *string   `gorm:"size:512" json:"-"`
	Avatar       *string   `gorm:"size:255" json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Contacts []Contact `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
