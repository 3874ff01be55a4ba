package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/NavalhaLabs/barber-manager/internal/logger"
)

// LogSink registra os eventos no log estruturado. Sempre ativo; serve
// de rastro quando não há redis configurado.
type LogSink struct{}

func (LogSink) Deliver(_ context.Context, ev Event) error {
	logger.L().Info("appointment event",
		zap.String("type", ev.Type),
		zap.Uint("barbershop_id", ev.BarbershopID),
		zap.Uint("appointment_id", ev.AppointmentID),
		zap.String("code", ev.AppointmentCode),
		zap.Time("start_time", ev.StartTime),
		zap.String("reason", ev.Reason),
	)
	return nil
}
