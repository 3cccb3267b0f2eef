package models

import (
	"strings"
	"time"
)

// Care actions.
const (
	ActionWater     = "water"
	ActionFertilize = "fertilize"
)

// CareActions lists the accepted action types in display order.
var CareActions = []string{ActionWater, ActionFertilize}

// CareLog records a single care action on a plant.
type CareLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlantID    uint      `gorm:"not null;index" json:"plant_id"`
	Plant      *Plant    `gorm:"foreignKey:PlantID" json:"-"`
	ActionType string    `gorm:"size:50;not null" json:"action_type"`
	Date       time.Time `gorm:"autoCreateTime;index" json:"date"`
	Note       string    `gorm:"size:200" json:"note,omitempty"`
}

// NormalizeCareAction returns the canonical action name, or "" when the
// input is not a known action.
func NormalizeCareAction(action string) string {
	a := strings.ToLower(strings.TrimSpace(action))
	for _, known := range CareActions {
		if a == known {
			return known
		}
	}
	return ""
}
