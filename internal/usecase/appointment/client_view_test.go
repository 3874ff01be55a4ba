package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
)

// fakeStatusProvider simula o gateway de pagamento respondendo um
// status fixo por referência.
type fakeStatusProvider struct {
	statuses map[string]string
	calls    int
}

func (p *fakeStatusProvider) Status(_ context.Context, ref string) (string, error) {
	p.calls++
	if s, ok := p.statuses[ref]; ok {
		return s, nil
	}
	return models.PaymentPending, nil
}

func TestListClientAppointmentsViews(t *testing.T) {
	repo := newFakeRepo()
	shop := repo.addShop(testShop())
	client, _ := repo.GetOrCreateClient(context.Background(), shop.ID, "Maria", "11988887777", "")

	upcoming := fakeNow.Add(72 * time.Hour)
	repo.addAppointment(models.Appointment{
		Code:          uuid.NewString(),
		BarbershopID:  shop.ID,
		BarberID:      7,
		ClientID:      client.ID,
		StartTime:     upcoming,
		EndTime:       upcoming.Add(30 * time.Minute),
		DurationMin:   30,
		Status:        string(domain.StatusConfirmed),
		PaymentStatus: models.PaymentUnpaid,
		Barber:        models.User{Name: "Carlos"},
		BarberProduct: models.BarberProduct{Name: "Corte masculino"},
	})

	past := fakeNow.Add(-48 * time.Hour)
	repo.addAppointment(models.Appointment{
		Code:          uuid.NewString(),
		BarbershopID:  shop.ID,
		BarberID:      7,
		ClientID:      client.ID,
		StartTime:     past,
		EndTime:       past.Add(30 * time.Minute),
		DurationMin:   30,
		Status:        string(domain.StatusCompleted),
		PaymentStatus: models.PaymentUnpaid,
	})

	uc := NewListClientAppointments(repo, nil, testClock())

	out, err := uc.Execute(context.Background(), shop.Slug, "11988887777")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}

	// ordenado por início: o passado vem primeiro
	done, next := out[0], out[1]

	if !done.View.IsPast || done.View.IsUpcoming {
		t.Fatal("completed appointment must be past")
	}
	if !done.View.NeedsPayment || !done.View.CanPay {
		t.Fatal("completed unpaid must need payment")
	}
	if done.View.CanCancel || done.View.CanReschedule {
		t.Fatal("finalized appointment cannot be cancelled or rescheduled")
	}
	if done.View.CancelBlockedReason != domain.PolicyReasonFinalStatus {
		t.Fatalf("cancel blocked reason = %s", done.View.CancelBlockedReason)
	}

	if !next.View.IsUpcoming {
		t.Fatal("future appointment must be upcoming")
	}
	if !next.View.CanCancel || !next.View.CanReschedule {
		t.Fatal("72h ahead with a 24h window must be cancellable and reschedulable")
	}
	if next.View.NeedsPayment {
		t.Fatal("future confirmed must not need payment")
	}
	if next.View.TimeUntil != "3 dias" {
		t.Fatalf("time until = %q", next.View.TimeUntil)
	}
	if next.ProductName != "Corte masculino" || next.BarberName != "Carlos" {
		t.Fatalf("service data missing: %q / %q", next.ProductName, next.BarberName)
	}
}

func TestListClientAppointmentsRefreshesPayment(t *testing.T) {
	repo := newFakeRepo()
	shop := repo.addShop(testShop())
	client, _ := repo.GetOrCreateClient(context.Background(), shop.ID, "Maria", "11988887777", "")

	start := fakeNow.Add(48 * time.Hour)
	ap := repo.addAppointment(models.Appointment{
		Code:          uuid.NewString(),
		BarbershopID:  shop.ID,
		BarberID:      7,
		ClientID:      client.ID,
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		Status:        string(domain.StatusConfirmed),
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PaymentMethodAdvance,
		PaymentRef:    "mp-123",
	})

	provider := &fakeStatusProvider{statuses: map[string]string{"mp-123": models.PaymentPaid}}
	uc := NewListClientAppointments(repo, provider, testClock())

	out, err := uc.Execute(context.Background(), shop.Slug, "11988887777")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d", provider.calls)
	}
	if out[0].PaymentStatus != models.PaymentPaid {
		t.Fatalf("payment status = %s", out[0].PaymentStatus)
	}

	// persistido: a próxima listagem não volta ao gateway
	stored, _ := repo.GetAppointmentByCode(context.Background(), shop.ID, ap.Code)
	if stored.PaymentStatus != models.PaymentPaid {
		t.Fatal("refreshed status not persisted")
	}
}

func TestListClientAppointmentsSkipsProviderWhenSettled(t *testing.T) {
	repo := newFakeRepo()
	shop := repo.addShop(testShop())
	client, _ := repo.GetOrCreateClient(context.Background(), shop.ID, "Maria", "11988887777", "")

	start := fakeNow.Add(48 * time.Hour)
	repo.addAppointment(models.Appointment{
		Code:          uuid.NewString(),
		BarbershopID:  shop.ID,
		BarberID:      7,
		ClientID:      client.ID,
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		Status:        string(domain.StatusConfirmed),
		PaymentStatus: models.PaymentPaid,
		PaymentMethod: models.PaymentMethodAdvance,
		PaymentRef:    "mp-123",
	})

	provider := &fakeStatusProvider{}
	uc := NewListClientAppointments(repo, provider, testClock())

	if _, err := uc.Execute(context.Background(), shop.Slug, "11988887777"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider consulted for settled payment: %d calls", provider.calls)
	}
}
