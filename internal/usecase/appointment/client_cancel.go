package appointment

import (
	"context"

	"github.com/NavalhaLabs/barber-manager/internal/audit"
	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/notification"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

// ClientCancelAppointment é o cancelamento pelo próprio cliente: além
// da máquina de estados, a política da barbearia decide a elegibilidade.
type ClientCancelAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notification.Dispatcher
	clock  timezone.Clock
}

func NewClientCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify *notification.Dispatcher,
	clock timezone.Clock,
) *ClientCancelAppointment {
	return &ClientCancelAppointment{
		repo:   repo,
		audit:  audit,
		notify: notify,
		clock:  clock,
	}
}

func (uc *ClientCancelAppointment) Execute(
	ctx context.Context,
	slug string,
	code string,
	phone string,
	reason string,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	ap, err := uc.findClientAppointment(ctx, shop, code, phone)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.clock, shop.Timezone)

	if err := domain.CanCancel(ap, domain.CancellationPolicyOf(shop), now); err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notify.OnCancelled(ap, reason)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "appointment_cancelled_by_client",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

// findClientAppointment valida que o código pertence ao cliente do
// telefone informado: a identidade da superfície pública.
func (uc *ClientCancelAppointment) findClientAppointment(
	ctx context.Context,
	shop *models.Barbershop,
	code string,
	phone string,
) (*models.Appointment, error) {

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

	return ap, nil
}
