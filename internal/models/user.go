// Package models contains data structures for the application's domain models.
package models

import "time"

// User is an account. Password is kept exactly as submitted and compared
// byte-for-byte on login.
type User struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Username   string      `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Password   string      `gorm:"size:150;not null" json:"-"`
	CreatedAt  time.Time   `json:"created_at"`
	Plants     []Plant     `gorm:"foreignKey:UserID" json:"plants,omitempty"`
	ForumPosts []ForumPost `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
