package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
)

func bookInput(shopID uint, date, hour string) BookAppointmentInput {
	return BookAppointmentInput{
		BarbershopID: shopID,
		BarberID:     7,
		ClientName:   "João Silva",
		ClientPhone:  "11999990000",
		ProductID:    0, // preenchido nos testes
		Date:         date,
		Time:         hour,
	}
}

func setupBooking(t *testing.T) (*fakeRepo, *BookAppointment, *models.Barbershop, *models.BarberProduct) {
	t.Helper()

	repo := newFakeRepo()
	shop := repo.addShop(testShop())
	product := repo.addProduct(models.BarberProduct{
		BarbershopID: shop.ID,
		Name:         "Corte masculino",
		DurationMin:  30,
		Price:        45,
		Active:       true,
	})

	auditD, _ := testDispatchers()
	uc := NewBookAppointment(repo, auditD, testClock())
	return repo, uc, shop, product
}

func TestBookAppointmentCreatesPending(t *testing.T) {
	_, uc, shop, product := setupBooking(t)

	in := bookInput(shop.ID, "2025-06-12", "14:00")
	in.ProductID = product.ID

	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want pending", ap.Status)
	}
	if ap.Code == "" {
		t.Fatal("code not generated")
	}
	if ap.DurationMin != 30 || ap.FinalPrice != 45 {
		t.Fatalf("service snapshot missing: dur=%d price=%v", ap.DurationMin, ap.FinalPrice)
	}
	want := time.Date(2025, 6, 12, 14, 0, 0, 0, time.UTC)
	if !ap.StartTime.Equal(want) || !ap.EndTime.Equal(want.Add(30*time.Minute)) {
		t.Fatalf("interval = [%v, %v)", ap.StartTime, ap.EndTime)
	}
	if ap.PaymentStatus != models.PaymentUnpaid {
		t.Fatalf("payment status = %s", ap.PaymentStatus)
	}
}

// Exemplo da régua: B confirmado 14:00–14:30; 14:15–14:45 falha,
// 14:30–15:00 passa.
func TestBookAppointmentConflicts(t *testing.T) {
	repo, uc, shop, product := setupBooking(t)

	repo.addAppointment(models.Appointment{
		BarbershopID: shop.ID,
		BarberID:     7,
		StartTime:    time.Date(2025, 6, 12, 14, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC),
		Status:       string(domain.StatusConfirmed),
	})

	in := bookInput(shop.ID, "2025-06-12", "14:15")
	in.ProductID = product.ID

	_, err := uc.Execute(context.Background(), in)
	var su *domain.SlotUnavailableError
	if !errors.As(err, &su) {
		t.Fatalf("overlap: expected SlotUnavailableError, got %v", err)
	}
	if su.AtWrite {
		t.Fatal("pre-check conflict reported as write-time")
	}

	in.Time = "14:30"
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("adjacent slot must succeed: %v", err)
	}
}

func TestBookAppointmentRequiresBarber(t *testing.T) {
	_, uc, shop, product := setupBooking(t)

	in := bookInput(shop.ID, "2025-06-12", "14:00")
	in.ProductID = product.ID
	in.BarberID = 0

	_, err := uc.Execute(context.Background(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "barber_id" {
		t.Fatalf("expected barber_id validation error, got %v", err)
	}
}

func TestBookAppointmentTooSoon(t *testing.T) {
	_, uc, shop, product := setupBooking(t)

	// fakeNow é 10:00; antecedência mínima de 60min barra 10:30
	in := bookInput(shop.ID, "2025-06-10", "10:30")
	in.ProductID = product.ID

	_, err := uc.Execute(context.Background(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Reason != "too_soon" {
		t.Fatalf("expected too_soon, got %v", err)
	}
}

func TestBookAppointmentMalformedTime(t *testing.T) {
	_, uc, shop, product := setupBooking(t)

	in := bookInput(shop.ID, "2025-06-12", "25:99")
	in.ProductID = product.ID

	_, err := uc.Execute(context.Background(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBookAppointmentUnknownProduct(t *testing.T) {
	_, uc, shop, _ := setupBooking(t)

	in := bookInput(shop.ID, "2025-06-12", "14:00")
	in.ProductID = 9999

	_, err := uc.Execute(context.Background(), in)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

// Propriedade central: sob reservas concorrentes do mesmo slot,
// exatamente uma vence e nenhum par de ativos se sobrepõe.
func TestConcurrentBookingNoDoubleBooking(t *testing.T) {
	repo, uc, shop, product := setupBooking(t)

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := bookInput(shop.ID, "2025-06-12", "14:00")
			in.ProductID = product.ID
			_, err := uc.Execute(context.Background(), in)
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var su *domain.SlotUnavailableError
		if !errors.As(err, &su) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("%d bookings succeeded for the same slot, want 1", succeeded)
	}

	// invariante global: nenhum par de ativos do barbeiro se sobrepõe
	var active []models.Appointment
	for _, ap := range repo.appointments {
		if domain.Status(ap.Status) != domain.StatusCancelled {
			active = append(active, *ap)
		}
	}
	for i := range active {
		for j := i + 1; j < len(active); j++ {
			if active[i].BarberID != active[j].BarberID {
				continue
			}
			if domain.Overlaps(active[i].StartTime, active[i].EndTime, active[j].StartTime, active[j].EndTime) {
				t.Fatalf("overlapping active appointments: %d and %d", active[i].ID, active[j].ID)
			}
		}
	}
}
