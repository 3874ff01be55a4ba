package appointment

import (
	"context"

	"github.com/NavalhaLabs/barber-manager/internal/audit"
	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/notification"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

type ConfirmAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notification.Dispatcher
	clock  timezone.Clock
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify *notification.Dispatcher,
	clock timezone.Clock,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:   repo,
		audit:  audit,
		notify: notify,
		clock:  clock,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
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
	if err := domain.Confirm(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notify.OnConfirmed(ap)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_confirmed",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
