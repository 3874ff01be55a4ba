package dto

import (
	"time"

	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
)

// AppointmentListDTO é a linha da agenda do barbeiro.
type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	ClientName    string    `json:"client_name"`
	ClientPhone   string    `json:"client_phone"`
	ProductName   string    `json:"product_name"`
	PaymentStatus string    `json:"payment_status"`
}

// ClientAppointmentDTO é o agendamento como o cliente enxerga: dados do
// serviço mais as flags derivadas, recalculadas a cada leitura.
type ClientAppointmentDTO struct {
	Code        string    `json:"code"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ProductName string    `json:"product_name"`
	BarberName  string    `json:"barber_name"`
	FinalPrice  float64   `json:"final_price"`

	PaymentStatus string `json:"payment_status"`

	View domain.ClientAppointmentView `json:"view"`
}
