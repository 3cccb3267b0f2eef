package models

import "time"

// Plant is a named specimen of a species owned by exactly one user.
type Plant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Owner     *User     `gorm:"foreignKey:UserID" json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Species   string    `gorm:"size:100;not null" json:"species"`
	CreatedAt time.Time `json:"created_at"`
	CareLogs  []CareLog `gorm:"foreignKey:PlantID" json:"care_logs,omitempty"`
}

// OwnedBy reports whether userID owns the plant.
func (p *Plant) OwnedBy(userID uint) bool {
	return p != nil && p.UserID == userID
}

// LastCare returns the most recent log of the given action, if any.
// CareLogs are expected newest first.
func (p *Plant) LastCare(action string) *CareLog {
	for i := range p.CareLogs {
		if p.CareLogs[i].ActionType == action {
			return &p.CareLogs[i]
		}
	}
	return nil
}
