package model

import "time"

type User struct {
	ID        string    `gorm:"primarykey;size:128" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
