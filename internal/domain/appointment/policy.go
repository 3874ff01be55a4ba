package appointment

import (
	"time"

	"github.com/NavalhaLabs/barber-manager/internal/models"
)

// ===============================
// Políticas (declarativas)
// ===============================

type CancellationPolicy struct {
	AllowCancellation bool
	MinHoursBefore    int
}

type ReschedulingPolicy struct {
	AllowRescheduling       bool
	MinHoursBefore          int
	MaxReschedulesPerPeriod int
	PeriodDays              int
}

func CancellationPolicyOf(shop *models.Barbershop) CancellationPolicy {
	return CancellationPolicy{
		AllowCancellation: shop.AllowCancellation,
		MinHoursBefore:    shop.CancelMinHours,
	}
}

func ReschedulingPolicyOf(shop *models.Barbershop) ReschedulingPolicy {
	return ReschedulingPolicy{
		AllowRescheduling:       shop.AllowRescheduling,
		MinHoursBefore:          shop.RescheduleMinHours,
		MaxReschedulesPerPeriod: shop.MaxReschedulesPerPeriod,
		PeriodDays:              shop.ReschedulePeriodDays,
	}
}

// ===============================
// Avaliação
// ===============================

// checkWindow aplica as regras temporais comuns a cancelar/remarcar.
// Desigualdade estrita: exatamente sobre o limite NÃO é elegível,
// evitando corrida no instante de corte.
func checkWindow(action string, ap *models.Appointment, minHours int, now time.Time) error {
	lead := ap.StartTime.Sub(now)

	if lead <= 0 {
		return &PolicyViolationError{Action: action, Reason: PolicyReasonInPast}
	}

	window := time.Duration(minHours) * time.Hour
	if lead <= window {
		return &PolicyViolationError{
			Action:        action,
			Reason:        PolicyReasonTooLate,
			RequiredHours: minHours,
			HoursLeft:     lead.Hours(),
		}
	}

	return nil
}

func checkNotFinalized(action string, ap *models.Appointment) error {
	s := Status(ap.Status)
	if s == StatusCancelled || s == StatusCompleted {
		return &PolicyViolationError{Action: action, Reason: PolicyReasonFinalStatus}
	}
	return nil
}

// CanCancel decide se o cliente ainda pode cancelar. Erro nil = pode.
func CanCancel(ap *models.Appointment, pol CancellationPolicy, now time.Time) error {
	if !pol.AllowCancellation {
		return &PolicyViolationError{Action: "cancel", Reason: PolicyReasonDisallowed}
	}
	if err := checkNotFinalized("cancel", ap); err != nil {
		return err
	}
	return checkWindow("cancel", ap, pol.MinHoursBefore, now)
}

// CanReschedule decide se o cliente ainda pode remarcar.
// countInPeriod = remarcações do cliente na janela de PeriodDays
// que termina em now.
func CanReschedule(ap *models.Appointment, pol ReschedulingPolicy, countInPeriod int, now time.Time) error {
	if !pol.AllowRescheduling {
		return &PolicyViolationError{Action: "reschedule", Reason: PolicyReasonDisallowed}
	}
	if err := checkNotFinalized("reschedule", ap); err != nil {
		return err
	}
	if err := checkWindow("reschedule", ap, pol.MinHoursBefore, now); err != nil {
		return err
	}
	if countInPeriod >= pol.MaxReschedulesPerPeriod {
		return &PolicyViolationError{
			Action:    "reschedule",
			Reason:    PolicyReasonQuotaExceeded,
			QuotaUsed: countInPeriod,
			QuotaMax:  pol.MaxReschedulesPerPeriod,
		}
	}
	return nil
}

// PeriodStart devolve o início da janela móvel usada na contagem de
// remarcações.
func (p ReschedulingPolicy) PeriodStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -p.PeriodDays)
}
