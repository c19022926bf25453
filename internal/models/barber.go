package models

import "time"

// Barber is the bookable resource. UserID links the barber to a login
// account so he can manage his own schedule; it is nil for profiles created
// by the admin before the barber ever signs in.
type Barber struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Bio             string  `gorm:"size:255" json:"bio"`
	Specialties     string  `gorm:"size:255" json:"specialties"`
	ExperienceYears int     `json:"experience_years"`
	Rating          float64 `json:"rating"`
	RatingCount     int     `json:"rating_count"`
	AvatarURL       string  `gorm:"size:255" json:"avatar_url"`
	Active          bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
