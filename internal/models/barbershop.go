package models

import "time"

type Barbershop struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:40" json:"timezone"`
	LogoURL  string `gorm:"size:255" json:"logo_url"`

	MinAdvanceMinutes int `gorm:"default:120" json:"min_advance_minutes"`

	// Política de cancelamento (iniciado pelo cliente)
	AllowCancellation bool `gorm:"default:true" json:"allow_cancellation"`
	CancelMinHours    int  `gorm:"default:24" json:"cancel_min_hours"`

	// Política de remarcação (iniciada pelo cliente)
	AllowRescheduling       bool `gorm:"default:true" json:"allow_rescheduling"`
	RescheduleMinHours      int  `gorm:"default:24" json:"reschedule_min_hours"`
	MaxReschedulesPerPeriod int  `gorm:"default:3" json:"max_reschedules_per_period"`
	ReschedulePeriodDays    int  `gorm:"default:30" json:"reschedule_period_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
