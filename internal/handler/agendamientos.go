package handler

import (
	"net/http"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AgendamientosHandler struct {
	svc     service.AgendamientoService
	procSvc service.ProcesamientoService
}

func NewAgendamientosHandler(svc service.AgendamientoService, procSvc service.ProcesamientoService) *AgendamientosHandler {
	return &AgendamientosHandler{svc: svc, procSvc: procSvc}
}

// Agendar godoc
// @Summary Agendar retiro de combustible
// @Description Reserva litros para mañana: descuenta saldo del cliente, consume límite diario y asigna número de ticket.
// @Tags agendamientos
// @Accept json
// @Produce json
// @Param body body dto.AgendarRequest true "Solicitud de agendamiento"
// @Success 201 {object} dto.AgendarResponse
// @Failure 400 {object} apierror.LimiteExcedido
// @Router /api/agendamientos [post]
func (h *AgendamientosHandler) Agendar(c *gin.Context) {
	var req dto.AgendarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agendar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPorDia godoc
// @Summary Agendamientos de un día
// @Description Lista ordenada por número de ticket, con los datos del cliente para la planilla del operador.
// @Tags agendamientos
// @Produce json
// @Security BearerAuth
// @Param fecha path string true "Fecha YYYY-MM-DD"
// @Success 200 {array} dto.AgendamientoDiaItem
// @Router /api/agendamientos/dia/{fecha} [get]
func (h *AgendamientosHandler) ListarPorDia(c *gin.Context) {
	resp, err := h.svc.ListarPorDia(c.Request.Context(), c.Param("fecha"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AgendamientosHandler) ListarPorCliente(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorCliente(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Procesar godoc
// @Summary Procesar un agendamiento
// @Description Despacha el combustible: descuenta inventario y marca el ticket como procesado. Idempotente.
// @Tags agendamientos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID del agendamiento"
// @Success 200 {object} dto.ProcesarResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/agendamientos/{id}/procesar [post]
func (h *AgendamientosHandler) Procesar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.procSvc.Procesar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AgendamientosHandler) Entregar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.procSvc.Entregar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cancelar godoc
// @Summary Cancelar un agendamiento pendiente
// @Description Devuelve los litros al saldo del cliente y libera el cupo del día.
// @Tags agendamientos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID del agendamiento"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /api/agendamientos/{id} [delete]
func (h *AgendamientosHandler) Cancelar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.procSvc.Cancelar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
