package models

import "time"

// Registro de remarcação: base da cota de remarcações por período.
type RescheduleLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID  uint `json:"barbershop_id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ClientID      uint `gorm:"index" json:"client_id"`

	OldStart time.Time `json:"old_start"`
	NewStart time.Time `json:"new_start"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
