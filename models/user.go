package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"` // Firebase UID
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}
