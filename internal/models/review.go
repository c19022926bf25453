package models

import "time"

// One review per appointment, written by the client after completion.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`
	BarberID      uint `gorm:"index" json:"barber_id"`
	ClientID      uint `json:"client_id"`

	Rating  int    `json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
