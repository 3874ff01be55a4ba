package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/NavalhaLabs/barber-manager/internal/audit"
	domain "github.com/NavalhaLabs/barber-manager/internal/domain/appointment"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/notification"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

// fakeRepo é um Repository em memória com as mesmas garantias do
// adaptador gorm: CreateAppointment/UpdateAppointment checam conflito
// dentro da seção crítica e devolvem SlotUnavailable(AtWrite): o
// equivalente da restrição de exclusão do banco.
type fakeRepo struct {
	mu sync.Mutex

	shops    map[uint]*models.Barbershop
	products map[uint]*models.BarberProduct
	clients  map[uint]*models.Client

	appointments map[uint]*models.Appointment
	reschedules  []models.RescheduleLog

	outsideHours     bool
	rescheduleLogErr error

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:        make(map[uint]*models.Barbershop),
		products:     make(map[uint]*models.BarberProduct),
		clients:      make(map[uint]*models.Client),
		appointments: make(map[uint]*models.Appointment),
		nextID:       1,
	}
}

func (r *fakeRepo) id() uint {
	id := r.nextID
	r.nextID++
	return id
}

func (r *fakeRepo) addShop(shop models.Barbershop) *models.Barbershop {
	r.mu.Lock()
	defer r.mu.Unlock()
	if shop.ID == 0 {
		shop.ID = r.id()
	}
	r.shops[shop.ID] = &shop
	return &shop
}

func (r *fakeRepo) addProduct(p models.BarberProduct) *models.BarberProduct {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.id()
	}
	r.products[p.ID] = &p
	return &p
}

func (r *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == 0 {
		ap.ID = r.id()
	}
	if ap.UpdatedAt.IsZero() {
		ap.UpdatedAt = time.Unix(1, 0)
	}
	r.appointments[ap.ID] = &ap
	return cloneAp(&ap)
}

func cloneAp(ap *models.Appointment) *models.Appointment {
	cp := *ap
	return &cp
}

// ---- Barbershop ----

func (r *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop, ok := r.shops[id]
	if !ok {
		return nil, domain.ErrBarbershopNotFound
	}
	cp := *shop
	return &cp, nil
}

func (r *fakeRepo) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, shop := range r.shops {
		if shop.Slug == slug {
			cp := *shop
			return &cp, nil
		}
	}
	return nil, domain.ErrBarbershopNotFound
}

// ---- Product ----

func (r *fakeRepo) GetProduct(_ context.Context, barbershopID, productID uint) (*models.BarberProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok || p.BarbershopID != barbershopID {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// ---- Client ----

func (r *fakeRepo) FindClientByPhone(_ context.Context, barbershopID uint, phone string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *fakeRepo) GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	if c, err := r.FindClientByPhone(ctx, barbershopID, phone); err == nil {
		return c, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c := &models.Client{
		ID:           r.id(),
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}
	r.clients[c.ID] = c
	cp := *c
	return &cp, nil
}

// ---- Appointment (create / conflict) ----

func (r *fakeRepo) conflictLocked(barberID uint, start, end time.Time, excludeID uint) bool {
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.ID == excludeID {
			continue
		}
		if domain.Status(ap.Status) == domain.StatusCancelled {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflictLocked(ap.BarberID, ap.StartTime, ap.EndTime, 0) {
		return &domain.SlotUnavailableError{
			BarberID: ap.BarberID,
			Start:    ap.StartTime,
			End:      ap.EndTime,
			AtWrite:  true,
		}
	}

	ap.ID = r.id()
	ap.UpdatedAt = time.Unix(1, 0)
	r.appointments[ap.ID] = cloneAp(ap)
	return nil
}

func (r *fakeRepo) ListConflicting(_ context.Context, barberID uint, start, end time.Time, excludeID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.ID == excludeID {
			continue
		}
		if domain.Status(ap.Status) == domain.StatusCancelled {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// ---- Appointment (read / state change) ----

func (r *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.BarberID != barberID {
		return nil, domain.ErrAppointmentNotFound
	}
	return cloneAp(ap), nil
}

func (r *fakeRepo) GetAppointmentByCode(_ context.Context, barbershopID uint, code string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.BarbershopID == barbershopID && ap.Code == code {
			return cloneAp(ap), nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(ap)
}

func (r *fakeRepo) updateLocked(ap *models.Appointment) error {
	stored, ok := r.appointments[ap.ID]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	if !stored.UpdatedAt.Equal(ap.UpdatedAt) {
		return domain.ErrConcurrentUpdate
	}

	if domain.Status(ap.Status) != domain.StatusCancelled &&
		r.conflictLocked(ap.BarberID, ap.StartTime, ap.EndTime, ap.ID) {
		return &domain.SlotUnavailableError{
			BarberID: ap.BarberID,
			Start:    ap.StartTime,
			End:      ap.EndTime,
			AtWrite:  true,
		}
	}

	ap.UpdatedAt = ap.UpdatedAt.Add(time.Second)
	r.appointments[ap.ID] = cloneAp(ap)
	return nil
}

// ---- Reschedule quota ----

// ApplyReschedule imita a transação do adaptador gorm: ou o
// agendamento e a linha de cota entram juntos, ou nada entra.
func (r *fakeRepo) ApplyReschedule(_ context.Context, ap *models.Appointment, rl *models.RescheduleLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rescheduleLogErr != nil {
		return r.rescheduleLogErr
	}
	if err := r.updateLocked(ap); err != nil {
		return err
	}
	r.appendRescheduleLocked(rl)
	return nil
}

// CreateRescheduleLog semeia entradas de cota diretamente nos testes.
func (r *fakeRepo) CreateRescheduleLog(_ context.Context, rl *models.RescheduleLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendRescheduleLocked(rl)
	return nil
}

func (r *fakeRepo) appendRescheduleLocked(rl *models.RescheduleLog) {
	rl.ID = r.id()
	if rl.CreatedAt.IsZero() {
		rl.CreatedAt = time.Now()
	}
	r.reschedules = append(r.reschedules, *rl)
}

func (r *fakeRepo) CountReschedulesSince(_ context.Context, clientID uint, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, rl := range r.reschedules {
		if rl.ClientID == clientID && !rl.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// ---- Availability / agenda ----

func (r *fakeRepo) GetWorkingHours(_ context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	return &models.WorkingHours{
		BarberID:  barberID,
		Weekday:   weekday,
		StartTime: "08:00",
		EndTime:   "18:00",
		Active:    !r.outsideHours,
	}, nil
}

func (r *fakeRepo) IsWithinWorkingHours(_ context.Context, _ uint, _, _ time.Time) (bool, error) {
	return !r.outsideHours, nil
}

func (r *fakeRepo) ListAppointmentsForDay(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || domain.Status(ap.Status) == domain.StatusCancelled {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *fakeRepo) ListAppointmentsByClient(_ context.Context, clientID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID == clientID {
			out = append(out, *ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(apps []models.Appointment) {
	for i := 1; i < len(apps); i++ {
		for j := i; j > 0 && apps[j].StartTime.Before(apps[j-1].StartTime); j-- {
			apps[j], apps[j-1] = apps[j-1], apps[j]
		}
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

// ---- fixtures ----

// fakeNow: terça-feira 10/06/2025 10:00 UTC
var fakeNow = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

func testClock() timezone.Clock {
	return timezone.FixedClock{T: fakeNow}
}

func testShop() models.Barbershop {
	return models.Barbershop{
		Name:              "Barbearia Teste",
		Slug:              "barbearia-teste",
		Timezone:          "UTC",
		MinAdvanceMinutes: 60,

		AllowCancellation: true,
		CancelMinHours:    24,

		AllowRescheduling:       true,
		RescheduleMinHours:      24,
		MaxReschedulesPerPeriod: 3,
		ReschedulePeriodDays:    30,
	}
}

func testDispatchers() (*audit.Dispatcher, *notification.Dispatcher) {
	return audit.NewDispatcher(nil), notification.NewDispatcher()
}
