package appointment

import (
	"context"

	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/dto"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/payment"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

// ListClientAppointments projeta a visão do cliente a cada leitura:
// flags derivadas nunca são persistidas.
type ListClientAppointments struct {
	repo     domain.Repository
	payments payment.StatusProvider // opcional
	clock    timezone.Clock
}

func NewListClientAppointments(
	repo domain.Repository,
	payments payment.StatusProvider,
	clock timezone.Clock,
) *ListClientAppointments {
	return &ListClientAppointments{
		repo:     repo,
		payments: payments,
		clock:    clock,
	}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	slug string,
	phone string,
) ([]dto.ClientAppointmentDTO, error) {

	shop, err := uc.repo.GetBarbershopBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	client, err := uc.repo.FindClientByPhone(ctx, shop.ID, phone)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	cancelPol := domain.CancellationPolicyOf(shop)
	reschedPol := domain.ReschedulingPolicyOf(shop)
	now := timezone.NowIn(uc.clock, shop.Timezone)

	// uma contagem por cliente cobre todos os agendamentos da lista
	count, err := uc.repo.CountReschedulesSince(ctx, client.ID, reschedPol.PeriodStart(now))
	if err != nil {
		return nil, err
	}

	out := make([]dto.ClientAppointmentDTO, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]

		uc.refreshPaymentStatus(ctx, ap)

		out = append(out, dto.ClientAppointmentDTO{
			Code:          ap.Code,
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
			Status:        ap.Status,
			ProductName:   ap.BarberProduct.Name,
			BarberName:    ap.Barber.Name,
			FinalPrice:    ap.FinalPrice,
			PaymentStatus: ap.PaymentStatus,
			View:          domain.ProjectClientView(ap, cancelPol, reschedPol, count, now),
		})
	}

	return out, nil
}

// refreshPaymentStatus consulta o provedor quando há pagamento
// antecipado pendente. Melhor esforço: falha não bloqueia a listagem.
func (uc *ListClientAppointments) refreshPaymentStatus(
	ctx context.Context,
	ap *models.Appointment,
) {

	if uc.payments == nil || ap.PaymentRef == "" {
		return
	}
	if ap.PaymentStatus != models.PaymentPending {
		return
	}

	status, err := uc.payments.Status(ctx, ap.PaymentRef)
	if err != nil || status == ap.PaymentStatus {
		return
	}

	ap.PaymentStatus = status
	_ = uc.repo.UpdateAppointment(ctx, ap)
}
