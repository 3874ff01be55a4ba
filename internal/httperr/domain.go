package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
)

// FromDomain traduz os erros tipados do núcleo de agendamento para uma
// resposta HTTP com o motivo concreto: a UI precisa explicar ao usuário
// por que a ação falhou, não só que falhou.
func FromDomain(c *gin.Context, err error) {

	var su *domain.SlotUnavailableError
	if errors.As(err, &su) {
		WriteDetails(c, http.StatusConflict, "slot_unavailable",
			"Este horário acabou de ser ocupado. Escolha outro horário.",
			gin.H{
				"barber_id": su.BarberID,
				"start":     su.Start,
				"end":       su.End,
				"at_write":  su.AtWrite,
			})
		return
	}

	var pv *domain.PolicyViolationError
	if errors.As(err, &pv) {
		WriteDetails(c, http.StatusUnprocessableEntity, "policy_violation",
			policyMessage(pv),
			gin.H{
				"action":         pv.Action,
				"reason":         pv.Reason,
				"required_hours": pv.RequiredHours,
				"hours_left":     pv.HoursLeft,
				"quota_used":     pv.QuotaUsed,
				"quota_max":      pv.QuotaMax,
			})
		return
	}

	var it *domain.InvalidTransitionError
	if errors.As(err, &it) {
		WriteDetails(c, http.StatusConflict, "invalid_transition",
			fmt.Sprintf("Transição de status inválida: %s → %s.", it.From, it.To),
			gin.H{"from": it.From, "to": it.To})
		return
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		WriteDetails(c, http.StatusBadRequest, "validation_error",
			"Dados inválidos.",
			gin.H{"field": ve.Field, "reason": ve.Reason})
		return
	}

	switch {
	case errors.Is(err, domain.ErrAppointmentNotFound):
		NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case errors.Is(err, domain.ErrBarbershopNotFound):
		NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
	case errors.Is(err, domain.ErrProductNotFound):
		NotFound(c, "product_not_found", "Serviço não encontrado.")
	case errors.Is(err, domain.ErrClientNotFound):
		NotFound(c, "client_not_found", "Cliente não encontrado.")
	case errors.Is(err, domain.ErrConcurrentUpdate):
		Conflict(c, "concurrent_update", "O agendamento foi alterado por outra operação. Tente novamente.")
	default:
		var be BusinessError
		if errors.As(err, &be) {
			BadRequest(c, be.Code, "Operação não permitida.")
			return
		}
		Internal(c, "internal_error", "Erro interno.")
	}
}

func policyMessage(pv *domain.PolicyViolationError) string {
	action := "cancelar"
	if pv.Action == "reschedule" {
		action = "remarcar"
	}

	switch pv.Reason {
	case domain.PolicyReasonTooLate:
		return fmt.Sprintf(
			"Só é possível %s com %d horas de antecedência (faltam %.0f horas).",
			action, pv.RequiredHours, pv.HoursLeft,
		)
	case domain.PolicyReasonQuotaExceeded:
		return fmt.Sprintf(
			"Limite de remarcações atingido (%d de %d no período).",
			pv.QuotaUsed, pv.QuotaMax,
		)
	case domain.PolicyReasonInPast:
		return "O horário do agendamento já passou."
	case domain.PolicyReasonFinalStatus:
		return "Este agendamento já foi finalizado."
	default:
		return fmt.Sprintf("A barbearia não permite %s agendamentos.", action)
	}
}
