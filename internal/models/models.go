package model

import "time"

// Todo is the persisted task record. The category is stored by name; due
// dates are calendar dates without a time component, kept as YYYY-MM-DD
// strings, null when unscheduled.
type Todo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Important   bool      `gorm:"not null;default:false" json:"important"`
	Category    string    `gorm:"index" json:"category,omitempty"`
	DueDate     *string   `gorm:"type:varchar(10)" json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category is a persisted category. Names are unique; todos reference them
// by name, so a rename orphans existing todos rather than cascading.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
