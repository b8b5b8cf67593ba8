package model

import "time"

// Category groups tasks by area (work, health, study, etc.).
// Names are unique per user.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_user_category_name,unique,priority:1"`
	Name      string `gorm:"not null;index:idx_user_category_name,unique,priority:2"`
	CreatedAt time.Time

	User *User `gorm:"constraint:OnDelete:CASCADE"`
}
