package appointment

import (
	"strings"
	"time"

	"github.com/NavalhaLabs/barber-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Toda mutação de status passa por aqui; nenhuma camada escreve
// ap.Status diretamente.

func transition(ap *models.Appointment, to Status) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}
	ap.Status = string(to)
	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := transition(ap, StatusConfirmed); err != nil {
		return err
	}
	ap.ConfirmedAt = &now
	return nil
}

func Start(ap *models.Appointment, now time.Time) error {
	if err := transition(ap, StatusInProgress); err != nil {
		return err
	}
	ap.StartedAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := transition(ap, StatusCompleted); err != nil {
		return err
	}
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := transition(ap, StatusCancelled); err != nil {
		return err
	}
	ap.CancelledAt = &now
	appendNote(ap, "cancelado", reason, now)
	return nil
}

// Reschedule mantém o mesmo registro: reescreve o intervalo e volta o
// status para pending. Não é uma nova entidade.
func Reschedule(ap *models.Appointment, newStart time.Time, reason string, now time.Time) error {
	if err := transition(ap, StatusPending); err != nil {
		return err
	}

	prev := ap.StartTime
	ap.StartTime = newStart
	ap.EndTime = newStart.Add(time.Duration(ap.DurationMin) * time.Minute)
	ap.ConfirmedAt = nil
	ap.StartedAt = nil

	appendNote(ap, "remarcado de "+prev.Format("02/01/2006 15:04"), reason, now)
	return nil
}

// Motivos são acrescentados às notas, nunca sobrescritos.
func appendNote(ap *models.Appointment, action, reason string, now time.Time) {
	line := "[" + now.Format("02/01/2006 15:04") + "] " + action
	if reason != "" {
		line += ": " + reason
	}

	if strings.TrimSpace(ap.Notes) == "" {
		ap.Notes = line
		return
	}
	ap.Notes = ap.Notes + "\n" + line
}
