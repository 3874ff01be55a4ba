package appointment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAppointmentNotFound = errors.New("appointment_not_found")
	ErrBarbershopNotFound  = errors.New("barbershop_not_found")
	ErrProductNotFound     = errors.New("product_not_found")
	ErrClientNotFound      = errors.New("client_not_found")

	// Outro escritor alterou a linha entre a leitura e o update.
	ErrConcurrentUpdate = errors.New("concurrent_update")
)

// ===============================
// InvalidTransition
// ===============================

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid_transition: %s -> %s", e.From, e.To)
}

// ===============================
// SlotUnavailable
// ===============================

// SlotUnavailableError: o intervalo pedido conflita com outro agendamento
// ativo do barbeiro. AtWrite distingue o conflito detectado pelo banco na
// escrita (corrida; vale retry) do detectado na pré-checagem (o cliente
// precisa escolher outro horário).
type SlotUnavailableError struct {
	BarberID uint
	Start    time.Time
	End      time.Time
	AtWrite  bool
}

func (e *SlotUnavailableError) Error() string {
	if e.AtWrite {
		return "slot_unavailable: conflict detected at write"
	}
	return "slot_unavailable"
}

// ===============================
// PolicyViolation
// ===============================

const (
	PolicyReasonDisallowed    = "action_disallowed"
	PolicyReasonTooLate       = "window_closed"
	PolicyReasonInPast        = "appointment_in_past"
	PolicyReasonFinalStatus   = "appointment_finalized"
	PolicyReasonQuotaExceeded = "reschedule_quota_exceeded"
)

// PolicyViolationError carrega o motivo concreto: a UI explica ao
// cliente por que a ação não está disponível.
type PolicyViolationError struct {
	Action        string // "cancel" | "reschedule"
	Reason        string
	RequiredHours int
	HoursLeft     float64
	QuotaUsed     int
	QuotaMax      int
}

func (e *PolicyViolationError) Error() string {
	switch e.Reason {
	case PolicyReasonTooLate:
		return fmt.Sprintf(
			"policy_violation: %s requires %dh notice, %.1fh left",
			e.Action, e.RequiredHours, e.HoursLeft,
		)
	case PolicyReasonQuotaExceeded:
		return fmt.Sprintf(
			"policy_violation: reschedule quota exhausted (%d/%d)",
			e.QuotaUsed, e.QuotaMax,
		)
	default:
		return fmt.Sprintf("policy_violation: %s (%s)", e.Action, e.Reason)
	}
}

// ===============================
// Validation
// ===============================

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation_error: %s %s", e.Field, e.Reason)
}
