package appointment

import (
	"testing"
	"time"

	"github.com/NavalhaLabs/barber-manager/internal/models"
)

var (
	viewCancelPol  = CancellationPolicy{AllowCancellation: true, MinHoursBefore: 24}
	viewReschedPol = ReschedulingPolicy{
		AllowRescheduling:       true,
		MinHoursBefore:          24,
		MaxReschedulesPerPeriod: 3,
		PeriodDays:              30,
	}
)

func project(ap *models.Appointment, count int) ClientAppointmentView {
	return ProjectClientView(ap, viewCancelPol, viewReschedPol, count, testNow)
}

func TestProjectUpcomingVsPast(t *testing.T) {
	cases := []struct {
		name     string
		start    time.Time
		status   Status
		upcoming bool
	}{
		{"futuro pendente", testNow.Add(48 * time.Hour), StatusPending, true},
		{"futuro confirmado", testNow.Add(48 * time.Hour), StatusConfirmed, true},
		{"futuro cancelado", testNow.Add(48 * time.Hour), StatusCancelled, false},
		{"futuro concluído", testNow.Add(48 * time.Hour), StatusCompleted, false},
		{"passado confirmado", testNow.Add(-time.Hour), StatusConfirmed, false},
		{"exatamente agora", testNow, StatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := project(apAt(tc.start, tc.status), 0)
			if v.IsUpcoming != tc.upcoming {
				t.Fatalf("IsUpcoming = %v, want %v", v.IsUpcoming, tc.upcoming)
			}
			if v.IsPast == v.IsUpcoming {
				t.Fatal("IsPast must be the negation of IsUpcoming")
			}
			if tc.upcoming && v.TimeUntil == "" {
				t.Fatal("TimeUntil empty for upcoming appointment")
			}
			if !tc.upcoming && v.TimeUntil != "" {
				t.Fatalf("TimeUntil = %q for non-upcoming", v.TimeUntil)
			}
		})
	}
}

func TestProjectNeedsPayment(t *testing.T) {
	past := testNow.Add(-2 * time.Hour)
	future := testNow.Add(48 * time.Hour)

	cases := []struct {
		name   string
		mutate func(*models.Appointment)
		want   bool
	}{
		{"concluído sem pagar", func(ap *models.Appointment) {
			ap.Status = string(StatusCompleted)
			ap.PaymentStatus = models.PaymentUnpaid
		}, true},
		{"concluído já pago", func(ap *models.Appointment) {
			ap.Status = string(StatusCompleted)
			ap.PaymentStatus = models.PaymentPaid
		}, false},
		{"concluído pago antecipado", func(ap *models.Appointment) {
			ap.Status = string(StatusCompleted)
			ap.PaymentStatus = models.PaymentUnpaid
			ap.PaymentMethod = models.PaymentMethodAdvance
		}, false},
		{"confirmado no passado pendente", func(ap *models.Appointment) {
			ap.Status = string(StatusConfirmed)
			ap.StartTime = past
			ap.PaymentStatus = models.PaymentPending
		}, true},
		{"confirmado no passado sem status", func(ap *models.Appointment) {
			ap.Status = string(StatusConfirmed)
			ap.StartTime = past
			ap.PaymentStatus = ""
		}, true},
		{"confirmado no futuro", func(ap *models.Appointment) {
			ap.Status = string(StatusConfirmed)
			ap.StartTime = future
			ap.PaymentStatus = models.PaymentPending
		}, false},
		{"cancelado nunca cobra", func(ap *models.Appointment) {
			ap.Status = string(StatusCancelled)
			ap.StartTime = past
			ap.PaymentStatus = models.PaymentUnpaid
		}, false},
		{"pendente não cobra", func(ap *models.Appointment) {
			ap.Status = string(StatusPending)
			ap.StartTime = past
			ap.PaymentStatus = models.PaymentUnpaid
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ap := apAt(future, StatusPending)
			tc.mutate(ap)
			v := project(ap, 0)
			if v.NeedsPayment != tc.want {
				t.Fatalf("NeedsPayment = %v, want %v", v.NeedsPayment, tc.want)
			}
			if v.CanPay != v.NeedsPayment {
				t.Fatal("CanPay must equal NeedsPayment")
			}
		})
	}
}

func TestProjectPolicyFlags(t *testing.T) {
	// 48h de antecedência: dentro da janela de 24h das duas políticas
	ap := apAt(testNow.Add(48*time.Hour), StatusConfirmed)

	v := project(ap, 0)
	if !v.CanCancel || !v.CanReschedule {
		t.Fatalf("expected both actions allowed: %+v", v)
	}

	// cota estourada bloqueia só a remarcação, com motivo concreto
	v = project(ap, 3)
	if !v.CanCancel {
		t.Fatal("cancel must stay allowed")
	}
	if v.CanReschedule {
		t.Fatal("reschedule must be blocked by quota")
	}
	if v.RescheduleBlockedReason != PolicyReasonQuotaExceeded {
		t.Fatalf("reason = %q", v.RescheduleBlockedReason)
	}

	// muito em cima da hora bloqueia os dois
	late := apAt(testNow.Add(2*time.Hour), StatusConfirmed)
	v = project(late, 0)
	if v.CanCancel || v.CanReschedule {
		t.Fatalf("expected both blocked: %+v", v)
	}
	if v.CancelBlockedReason != PolicyReasonTooLate {
		t.Fatalf("cancel reason = %q", v.CancelBlockedReason)
	}
}

func TestFormatTimeUntil(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{49 * time.Hour, "2 dias"},
		{25 * time.Hour, "1 dia"},
		{3 * time.Hour, "3 horas"},
		{time.Hour, "1 hora"},
		{45 * time.Minute, "45 minutos"},
		{30 * time.Second, "1 minuto"},
	}

	for _, tc := range cases {
		if got := FormatTimeUntil(tc.d); got != tc.want {
			t.Errorf("FormatTimeUntil(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
