package appointment

import (
	"time"

	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

// parseStartInShop resolve "2006-01-02" + "15:04" no fuso da barbearia.
func parseStartInShop(shop *models.Barbershop, dateStr, timeStr string) (time.Time, error) {
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return time.Time{}, &domain.ValidationError{
			Field:  "date_time",
			Reason: "malformed",
		}
	}
	return start, nil
}

// checkMinAdvance aplica a antecedência mínima de criação da barbearia.
func checkMinAdvance(shop *models.Barbershop, start, now time.Time) error {
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return &domain.ValidationError{
			Field:  "start_time",
			Reason: "too_soon",
		}
	}
	return nil
}
