package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NavalhaLabs/barber-manager/internal/httperr"
	"github.com/NavalhaLabs/barber-manager/internal/middleware"
	usecase "github.com/NavalhaLabs/barber-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler é a superfície autenticada do barbeiro: criar,
// listar e mover agendamentos pelo ciclo de vida. Toda a regra fica nos
// use cases; aqui só binding, contexto e tradução de erro.
type AppointmentHandler struct {
	book       *usecase.BookAppointment
	confirm    *usecase.ConfirmAppointment
	start      *usecase.StartAppointment
	complete   *usecase.CompleteAppointment
	cancel     *usecase.CancelAppointment
	reschedule *usecase.RescheduleAppointment
	listByDate *usecase.ListAppointmentsByDate
	listByMon  *usecase.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	book *usecase.BookAppointment,
	confirm *usecase.ConfirmAppointment,
	start *usecase.StartAppointment,
	complete *usecase.CompleteAppointment,
	cancel *usecase.CancelAppointment,
	reschedule *usecase.RescheduleAppointment,
	listByDate *usecase.ListAppointmentsByDate,
	listByMon *usecase.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:       book,
		confirm:    confirm,
		start:      start,
		complete:   complete,
		cancel:     cancel,
		reschedule: reschedule,
		listByDate: listByDate,
		listByMon:  listByMon,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ProductID   uint   `json:"product_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// HELPERS
// ======================================================

func actorFromContext(c *gin.Context) (barberID, barbershopID uint) {
	return c.MustGet(middleware.ContextUserID).(uint),
		c.MustGet(middleware.ContextBarbershopID).(uint)
}

func appointmentIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID, barbershopID := actorFromContext(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), usecase.BookAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductID:    req.ProductID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	barberID, barbershopID := actorFromContext(c)

	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	barberID, barbershopID := actorFromContext(c)

	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	ap, err := h.start.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	barberID, barbershopID := actorFromContext(c)

	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	barberID, barbershopID := actorFromContext(c)

	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req) // motivo é opcional

	ap, err := h.cancel.Execute(c.Request.Context(), barbershopID, barberID, id, req.Reason)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	barberID, barbershopID := actorFromContext(c)

	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(
		c.Request.Context(),
		barbershopID, barberID, id,
		req.Date, req.Time, req.Reason,
	)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, barbershopID := actorFromContext(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDateParam(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), barberID, barbershopID, date)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(200, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, barbershopID := actorFromContext(c)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listByMon.Execute(c.Request.Context(), barberID, barbershopID, year, month)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}
