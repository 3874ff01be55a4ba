package notification

import (
	"context"
	"time"

	"github.com/NavalhaLabs/barber-manager/internal/models"
)

const (
	EventConfirmed   = "appointment.confirmed"
	EventCancelled   = "appointment.cancelled"
	EventRescheduled = "appointment.rescheduled"
)

// Event é o payload entregue aos sinks. Melhor esforço: o núcleo nunca
// depende do sucesso da entrega.
type Event struct {
	Type string `json:"type"`

	BarbershopID    uint   `json:"barbershop_id"`
	AppointmentID   uint   `json:"appointment_id"`
	AppointmentCode string `json:"appointment_code"`
	BarberID        uint   `json:"barber_id"`
	ClientID        uint   `json:"client_id"`

	StartTime time.Time `json:"start_time"`

	// Preenchidos conforme o tipo
	Reason        string     `json:"reason,omitempty"`
	PreviousStart *time.Time `json:"previous_start,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

type Sink interface {
	Deliver(ctx context.Context, ev Event) error
}

func eventFrom(kind string, ap *models.Appointment) Event {
	return Event{
		Type:            kind,
		BarbershopID:    ap.BarbershopID,
		AppointmentID:   ap.ID,
		AppointmentCode: ap.Code,
		BarberID:        ap.BarberID,
		ClientID:        ap.ClientID,
		StartTime:       ap.StartTime,
		OccurredAt:      time.Now(),
	}
}
