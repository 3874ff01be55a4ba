package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NavalhaLabs/barber-manager/internal/httperr"
	usecase "github.com/NavalhaLabs/barber-manager/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// ClientAppointmentHandler é o autoatendimento do cliente final,
// identificado por telefone + código do agendamento. Sem login: o
// código é um uuid opaco que só chega por confirmação.
type ClientAppointmentHandler struct {
	list       *usecase.ListClientAppointments
	cancel     *usecase.ClientCancelAppointment
	reschedule *usecase.ClientRescheduleAppointment
}

func NewClientAppointmentHandler(
	list *usecase.ListClientAppointments,
	cancel *usecase.ClientCancelAppointment,
	reschedule *usecase.ClientRescheduleAppointment,
) *ClientAppointmentHandler {
	return &ClientAppointmentHandler{
		list:       list,
		cancel:     cancel,
		reschedule: reschedule,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type ClientCancelRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Reason string `json:"reason"`
}

type ClientRescheduleRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
}

////////////////////////////////////////////////////////
// LIST
////////////////////////////////////////////////////////

func (h *ClientAppointmentHandler) List(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		httperr.BadRequest(c, "missing_phone", "Telefone obrigatório.")
		return
	}

	out, err := h.list.Execute(c.Request.Context(), c.Param("slug"), phone)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": out})
}

////////////////////////////////////////////////////////
// CANCEL
////////////////////////////////////////////////////////

func (h *ClientAppointmentHandler) Cancel(c *gin.Context) {
	var req ClientCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.cancel.Execute(
		c.Request.Context(),
		c.Param("slug"),
		c.Param("code"),
		req.Phone,
		req.Reason,
	)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

////////////////////////////////////////////////////////
// RESCHEDULE
////////////////////////////////////////////////////////

func (h *ClientAppointmentHandler) Reschedule(c *gin.Context) {
	var req ClientRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(
		c.Request.Context(),
		c.Param("slug"),
		c.Param("code"),
		req.Phone,
		req.Date,
		req.Time,
		req.Reason,
	)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
