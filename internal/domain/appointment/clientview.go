package appointment

import (
	"fmt"
	"time"

	"github.com/NavalhaLabs/barber-manager/internal/models"
)

// ===============================
// ClientAppointmentView
// ===============================

// Flags derivadas que a superfície do cliente consome. Calculadas a cada
// leitura a partir de política + horário + pagamento; nunca persistidas.
type ClientAppointmentView struct {
	IsUpcoming    bool `json:"is_upcoming"`
	IsPast        bool `json:"is_past"`
	CanCancel     bool `json:"can_cancel"`
	CanReschedule bool `json:"can_reschedule"`
	NeedsPayment  bool `json:"needs_payment"`
	CanPay        bool `json:"can_pay"`

	// Preenchido apenas quando IsUpcoming
	TimeUntil string `json:"time_until,omitempty"`

	// Motivo concreto quando cancelar/remarcar está bloqueado
	CancelBlockedReason     string `json:"cancel_blocked_reason,omitempty"`
	RescheduleBlockedReason string `json:"reschedule_blocked_reason,omitempty"`
}

// ProjectClientView é pura: mesma entrada, mesma saída.
func ProjectClientView(
	ap *models.Appointment,
	cancelPol CancellationPolicy,
	reschedPol ReschedulingPolicy,
	rescheduleCountInPeriod int,
	now time.Time,
) ClientAppointmentView {

	status := Status(ap.Status)
	v := ClientAppointmentView{}

	v.IsUpcoming = !IsTerminal(status) && ap.StartTime.After(now)
	v.IsPast = !v.IsUpcoming

	if err := CanCancel(ap, cancelPol, now); err != nil {
		v.CancelBlockedReason = policyReason(err)
	} else {
		v.CanCancel = true
	}

	if err := CanReschedule(ap, reschedPol, rescheduleCountInPeriod, now); err != nil {
		v.RescheduleBlockedReason = policyReason(err)
	} else {
		v.CanReschedule = true
	}

	v.NeedsPayment = needsPayment(ap, now)
	v.CanPay = v.NeedsPayment

	if v.IsUpcoming {
		v.TimeUntil = FormatTimeUntil(ap.StartTime.Sub(now))
	}

	return v
}

// needsPayment: a cobrança só existe depois do serviço prestado -
// completed sem pagamento (e sem pagamento antecipado), ou confirmed já
// no passado com pagamento ausente/pendente. Cancelado nunca cobra.
func needsPayment(ap *models.Appointment, now time.Time) bool {
	switch Status(ap.Status) {
	case StatusCompleted:
		return ap.PaymentStatus != models.PaymentPaid &&
			ap.PaymentMethod != models.PaymentMethodAdvance

	case StatusConfirmed:
		if ap.StartTime.After(now) {
			return false
		}
		// status de pagamento vazio (linhas antigas) conta como pendente
		return ap.PaymentStatus == "" || ap.PaymentStatus == models.PaymentPending
	}
	return false
}

func policyReason(err error) string {
	if pv, ok := err.(*PolicyViolationError); ok {
		return pv.Reason
	}
	return "policy_violation"
}

// FormatTimeUntil formata o tempo restante na maior unidade inteira.
func FormatTimeUntil(d time.Duration) string {
	if d <= 0 {
		return ""
	}

	if days := int(d.Hours()) / 24; days >= 1 {
		if days == 1 {
			return "1 dia"
		}
		return fmt.Sprintf("%d dias", days)
	}

	if hours := int(d.Hours()); hours >= 1 {
		if hours == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", hours)
	}

	minutes := int(d.Minutes())
	if minutes <= 1 {
		return "1 minuto"
	}
	return fmt.Sprintf("%d minutos", minutes)
}
