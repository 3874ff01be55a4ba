package appointment

import (
	"context"
	"time"

	"github.com/NavalhaLabs/barber-manager/internal/audit"
	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/notification"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

// ======================================================
// Remarcação: núcleo compartilhado (staff e cliente)
// ======================================================

type rescheduler struct {
	repo    domain.Repository
	checker *domain.AvailabilityChecker
	audit   *audit.Dispatcher
	notify  *notification.Dispatcher
	clock   timezone.Clock
}

// apply valida o novo intervalo e regrava o MESMO agendamento: mesma
// linha, novo horário, status de volta a pending. O intervalo antigo
// fica livre no instante do commit.
func (rs *rescheduler) apply(
	ctx context.Context,
	shop *models.Barbershop,
	ap *models.Appointment,
	dateStr string,
	timeStr string,
	reason string,
	auditAction string,
	actorID *uint,
) (*models.Appointment, error) {

	newStart, err := parseStartInShop(shop, dateStr, timeStr)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(rs.clock, shop.Timezone)
	if err := checkMinAdvance(shop, newStart, now); err != nil {
		return nil, err
	}

	newEnd := newStart.Add(time.Duration(ap.DurationMin) * time.Minute)

	ok, err := rs.repo.IsWithinWorkingHours(ctx, ap.BarberID, newStart, newEnd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.ValidationError{
			Field:  "start_time",
			Reason: "outside_working_hours",
		}
	}

	// O próprio agendamento não conflita consigo mesmo
	if err := rs.checker.Assert(ctx, ap.BarberID, newStart, ap.DurationMin, ap.ID); err != nil {
		return nil, err
	}

	oldStart := ap.StartTime

	if err := domain.Reschedule(ap, newStart, reason, now); err != nil {
		return nil, err
	}

	// Corrida na escrita sai daqui como SlotUnavailable(AtWrite): a
	// restrição de exclusão do banco fala por último. O registro de
	// cota entra na mesma transação; ele alimenta CountReschedulesSince
	// e não pode se perder em silêncio.
	if err := rs.repo.ApplyReschedule(ctx, ap, &models.RescheduleLog{
		BarbershopID:  shop.ID,
		AppointmentID: ap.ID,
		ClientID:      ap.ClientID,
		OldStart:      oldStart,
		NewStart:      newStart,
		Reason:        reason,
	}); err != nil {
		return nil, err
	}

	rs.notify.OnRescheduled(ap, oldStart)

	rs.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       actorID,
		Action:       auditAction,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

// ======================================================
// Staff
// ======================================================

type RescheduleAppointment struct {
	rescheduler
}

func NewRescheduleAppointment(
	repo domain.Repository,
	auditD *audit.Dispatcher,
	notify *notification.Dispatcher,
	clock timezone.Clock,
) *RescheduleAppointment {
	return &RescheduleAppointment{rescheduler{
		repo:    repo,
		checker: domain.NewAvailabilityChecker(repo),
		audit:   auditD,
		notify:  notify,
		clock:   clock,
	}}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
	dateStr string,
	timeStr string,
	reason string,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, err
	}

	return uc.apply(ctx, shop, ap, dateStr, timeStr, reason,
		"appointment_rescheduled", &barberID)
}

// ======================================================
// Cliente (política + cota)
// ======================================================

type ClientRescheduleAppointment struct {
	rescheduler
}

func NewClientRescheduleAppointment(
	repo domain.Repository,
	auditD *audit.Dispatcher,
	notify *notification.Dispatcher,
	clock timezone.Clock,
) *ClientRescheduleAppointment {
	return &ClientRescheduleAppointment{rescheduler{
		repo:    repo,
		checker: domain.NewAvailabilityChecker(repo),
		audit:   auditD,
		notify:  notify,
		clock:   clock,
	}}
}

func (uc *ClientRescheduleAppointment) Execute(
	ctx context.Context,
	slug string,
	code string,
	phone string,
	dateStr string,
	timeStr string,
	reason string,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	client, err := uc.repo.FindClientByPhone(ctx, shop.ID, phone)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByCode(ctx, shop.ID, code)
	if err != nil {
		return nil, err
	}
	if ap.ClientID != client.ID {
		return nil, domain.ErrAppointmentNotFound
	}

	pol := domain.ReschedulingPolicyOf(shop)
	now := timezone.NowIn(uc.clock, shop.Timezone)

	count, err := uc.repo.CountReschedulesSince(ctx, client.ID, pol.PeriodStart(now))
	if err != nil {
		return nil, err
	}

	if err := domain.CanReschedule(ap, pol, count, now); err != nil {
		return nil, err
	}

	return uc.apply(ctx, shop, ap, dateStr, timeStr, reason,
		"appointment_rescheduled_by_client", nil)
}
