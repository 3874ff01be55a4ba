package appointment

import (
	"context"
	"time"

	"github.com/NavalhaLabs/barber-manager/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// -------- Product --------
	GetProduct(
		ctx context.Context,
		barbershopID uint,
		productID uint,
	) (*models.BarberProduct, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	FindClientByPhone(
		ctx context.Context,
		barbershopID uint,
		phone string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment insere de forma atômica em relação a outros
	// escritores do mesmo barbeiro: a checagem de conflito e o insert
	// acontecem na mesma transação, serializados por lock consultivo.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListConflicting devolve agendamentos ativos do barbeiro cujo
	// intervalo [start_time, end_time) sobrepõe [start, end).
	// excludeID ignora o próprio agendamento durante remarcação.
	ListConflicting(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	// -------- Appointment (read / state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	GetAppointmentByCode(
		ctx context.Context,
		barbershopID uint,
		code string,
	) (*models.Appointment, error)

	// UpdateAppointment grava com concorrência otimista (guard em
	// updated_at); remarcações que violem a restrição de sobreposição
	// voltam como SlotUnavailableError{AtWrite: true}.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Reschedule quota --------

	// ApplyReschedule regrava o agendamento e registra a entrada de
	// cota atomicamente. A linha em reschedules é a única fonte de
	// CountReschedulesSince; gravar uma sem a outra quebraria a cota.
	ApplyReschedule(
		ctx context.Context,
		ap *models.Appointment,
		rl *models.RescheduleLog,
	) error

	CountReschedulesSince(
		ctx context.Context,
		clientID uint,
		since time.Time,
	) (int, error)

	// -------- Availability / agenda --------
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WorkingHours, error)

	IsWithinWorkingHours(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsByClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)
}
