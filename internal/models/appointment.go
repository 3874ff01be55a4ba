package models

import "time"

// Status de pagamento: independente do status do agendamento.
const (
	PaymentUnpaid  = "unpaid"
	PaymentPending = "pending"
	PaymentPaid    = "paid"

	PaymentMethodAdvance = "advance"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Código opaco exposto ao cliente (o ID numérico fica interno)
	Code string `gorm:"size:36;uniqueIndex" json:"code"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	BarberProductID uint          `json:"barber_product_id"`
	BarberProduct   BarberProduct `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber_product"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Cópias do serviço no momento da reserva; edições posteriores
	// do serviço não alteram agendamentos existentes.
	DurationMin int     `json:"duration_min"`
	FinalPrice  float64 `json:"final_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PaymentStatus string `gorm:"size:10;default:'unpaid'" json:"payment_status"`
	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	PaymentRef    string `gorm:"size:40" json:"-"`

	// Notas acumulam motivos de cancelamento/remarcação, nunca sobrescrevem
	Notes string `gorm:"type:text" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
