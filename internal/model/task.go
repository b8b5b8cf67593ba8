package model

import "time"

// Task represents a single item on a user's list.
type Task struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Text      string `gorm:"not null"`
	Completed bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"constraint:OnDelete:CASCADE"`

	// Categories is filled by TaskRepository.Hydrate, not by gorm.
	Categories []Category `gorm:"-"`
}

// TaskCategory links a task to one of its owner's categories.
type TaskCategory struct {
	TaskID     uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey;index"`

	Task     *Task     `gorm:"constraint:OnDelete:CASCADE"`
	Category *Category `gorm:"constraint:OnDelete:CASCADE"`
}
