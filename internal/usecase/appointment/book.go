package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NavalhaLabs/barber-manager/internal/audit"
	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ProductID uint

	Date  string
	Time  string
	Notes string

	// Pagamento antecipado (opcional): só o status é consumido depois
	PaymentMethod string
	PaymentRef    string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo    domain.Repository
	checker *domain.AvailabilityChecker
	audit   *audit.Dispatcher
	clock   timezone.Clock
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *BookAppointment {
	return &BookAppointment{
		repo:    repo,
		checker: domain.NewAvailabilityChecker(repo),
		audit:   audit,
		clock:   clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	if in.BarberID == 0 {
		return nil, &domain.ValidationError{Field: "barber_id", Reason: "required"}
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	start, err := parseStartInShop(shop, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.clock, shop.Timezone)
	if err := checkMinAdvance(shop, start, now); err != nil {
		return nil, err
	}

	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(product.DurationMin) * time.Minute)

	ok, err := uc.repo.IsWithinWorkingHours(ctx, in.BarberID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.ValidationError{
			Field:  "start_time",
			Reason: "outside_working_hours",
		}
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	paymentStatus := models.PaymentUnpaid
	if in.PaymentRef != "" {
		paymentStatus = models.PaymentPending
	}

	// Pré-checagem + escrita atômica. Conflito só na escrita é corrida:
	// vale uma nova tentativa com visão fresca antes de devolver o erro.
	var ap *models.Appointment
	for attempt := 0; attempt < 2; attempt++ {

		if err := uc.checker.Assert(ctx, in.BarberID, start, product.DurationMin, 0); err != nil {
			return nil, err
		}

		ap = &models.Appointment{
			Code:            uuid.NewString(),
			BarbershopID:    in.BarbershopID,
			BarberID:        in.BarberID,
			ClientID:        client.ID,
			BarberProductID: product.ID,
			StartTime:       start,
			EndTime:         end,
			DurationMin:     product.DurationMin,
			FinalPrice:      product.Price,
			Status:          string(domain.InitialStatus()),
			PaymentStatus:   paymentStatus,
			PaymentMethod:   in.PaymentMethod,
			PaymentRef:      in.PaymentRef,
			Notes:           in.Notes,
		}

		err = uc.repo.CreateAppointment(ctx, ap)
		if err == nil {
			break
		}

		var su *domain.SlotUnavailableError
		if errors.As(err, &su) && su.AtWrite && attempt == 0 {
			continue
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
