package models

import "time"

// ShopSettings is a single-row table: the shop's identity and booking rules.
type ShopSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone          string `gorm:"size:50" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:60" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
