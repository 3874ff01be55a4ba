package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// Clock abstrai o relógio para que decisões dependentes de horário
// (janelas de política, antecedência mínima) sejam testáveis.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock devolve sempre o mesmo instante. Uso em testes.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// NowIn resolve o "agora" do relógio informado no fuso da barbearia.
func NowIn(clock Clock, tz string) time.Time {
	return clock.Now().In(Location(tz))
}
