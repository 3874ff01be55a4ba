package appointment

import (
	"context"

	"github.com/NavalhaLabs/barber-manager/internal/audit"
	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/notification"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

// CancelAppointment é o cancelamento pelo staff: passa pela máquina de
// estados mas não pela política: política só limita o cliente.
type CancelAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notification.Dispatcher
	clock  timezone.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify *notification.Dispatcher,
	clock timezone.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		audit:  audit,
		notify: notify,
		clock:  clock,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
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

	now := timezone.NowIn(uc.clock, shop.Timezone)
	if err := domain.Cancel(ap, reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notify.OnCancelled(ap, reason)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
