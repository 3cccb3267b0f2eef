package models

import "time"

// ForumPost is a species-tagged message on the shared forum.
type ForumPost struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Author       *User     `gorm:"foreignKey:UserID" json:"author,omitempty"`
	PlantSpecies string    `gorm:"size:100;not null;index" json:"plant_species"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Date         time.Time `gorm:"autoCreateTime;index" json:"date"`
}
