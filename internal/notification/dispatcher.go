package notification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/NavalhaLabs/barber-manager/internal/logger"
	"github.com/NavalhaLabs/barber-manager/internal/models"
)

// Dispatcher entrega eventos de ciclo de vida em background através de
// um canal com buffer. Fila cheia descarta o evento: notificação nunca
// quebra a API.
type Dispatcher struct {
	sinks []Sink
	queue chan Event
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		for _, sink := range d.sinks {
			if err := sink.Deliver(ctx, ev); err != nil {
				logger.L().Warn("notification delivery failed",
					zap.String("type", ev.Type),
					zap.Uint("appointment_id", ev.AppointmentID),
					zap.Error(err),
				)
			}
		}
		cancel()
	}
}

func (d *Dispatcher) dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		logger.L().Warn("notification queue full, dropping event",
			zap.String("type", ev.Type),
			zap.Uint("appointment_id", ev.AppointmentID),
		)
	}
}

func (d *Dispatcher) OnConfirmed(ap *models.Appointment) {
	d.dispatch(eventFrom(EventConfirmed, ap))
}

func (d *Dispatcher) OnCancelled(ap *models.Appointment, reason string) {
	ev := eventFrom(EventCancelled, ap)
	ev.Reason = reason
	d.dispatch(ev)
}

func (d *Dispatcher) OnRescheduled(ap *models.Appointment, previousStart time.Time) {
	ev := eventFrom(EventRescheduled, ap)
	ev.PreviousStart = &previousStart
	d.dispatch(ev)
}
