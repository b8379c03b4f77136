package handler

import (
	"net/http"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type SistemaHandler struct{ svc service.SistemaService }

func NewSistemaHandler(svc service.SistemaService) *SistemaHandler {
	return &SistemaHandler{svc: svc}
}

// Limites godoc
// @Summary Límites diarios y uso acumulado
// @Description Devuelve el límite configurado y los litros agendados/procesados de hoy y mañana por combustible.
// @Tags sistema
// @Produce json
// @Success 200 {object} dto.LimitesResponse
// @Router /api/sistema/limites [get]
func (h *SistemaHandler) Limites(c *gin.Context) {
	resp, err := h.svc.Limites(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarLimite godoc
// @Summary Configurar el límite diario
// @Tags sistema
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ActualizarLimiteRequest true "Nuevo límite"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /api/sistema/limite-diario [put]
func (h *SistemaHandler) ActualizarLimite(c *gin.Context) {
	var req dto.ActualizarLimiteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarLimite(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Bloqueo godoc
// @Summary Bloquear o desbloquear agendamientos
// @Tags sistema
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.BloqueoRequest true "Estado del bloqueo"
// @Success 204
// @Router /api/sistema/bloqueo [post]
func (h *SistemaHandler) Bloqueo(c *gin.Context) {
	var req dto.BloqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetBloqueo(c.Request.Context(), *req.Bloqueado); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Estadisticas godoc
// @Summary Estadísticas del panel de control
// @Tags sistema
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EstadisticasResponse
// @Router /api/estadisticas [get]
func (h *SistemaHandler) Estadisticas(c *gin.Context) {
	resp, err := h.svc.Estadisticas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
