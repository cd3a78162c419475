package models

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"type:varchar(100)" json:"author"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Declares the FK on comments; deleting a post removes its comments.
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
