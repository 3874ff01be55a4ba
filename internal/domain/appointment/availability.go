package appointment

import (
	"context"
	"time"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ProductID    uint
	Date         time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Overlaps aplica a sobreposição padrão de intervalos semiabertos:
// [aStart, aEnd) cruza [bStart, bEnd) sse aStart < bEnd && aEnd > bStart.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ===============================
// AvailabilityChecker
// ===============================

// AvailabilityChecker decide se um intervalo está livre de conflito para
// um barbeiro. Sem efeitos colaterais; a checagem definitiva acontece de
// novo dentro da transação de escrita (ver infra/repository).
type AvailabilityChecker struct {
	repo Repository
}

func NewAvailabilityChecker(repo Repository) *AvailabilityChecker {
	return &AvailabilityChecker{repo: repo}
}

// IsAvailable: excludeID ignora o próprio agendamento (remarcação não
// conflita consigo mesma); zero = nenhum.
func (c *AvailabilityChecker) IsAvailable(
	ctx context.Context,
	barberID uint,
	start time.Time,
	durationMin int,
	excludeID uint,
) (bool, error) {

	if durationMin <= 0 {
		return false, &ValidationError{Field: "duration_min", Reason: "must_be_positive"}
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	conflicts, err := c.repo.ListConflicting(ctx, barberID, start, end, excludeID)
	if err != nil {
		return false, err
	}

	return len(conflicts) == 0, nil
}

// Assert devolve SlotUnavailableError (pré-checagem, AtWrite=false)
// quando o intervalo está ocupado.
func (c *AvailabilityChecker) Assert(
	ctx context.Context,
	barberID uint,
	start time.Time,
	durationMin int,
	excludeID uint,
) error {

	free, err := c.IsAvailable(ctx, barberID, start, durationMin, excludeID)
	if err != nil {
		return err
	}
	if !free {
		return &SlotUnavailableError{
			BarberID: barberID,
			Start:    start,
			End:      start.Add(time.Duration(durationMin) * time.Minute),
		}
	}
	return nil
}
