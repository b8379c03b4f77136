package handler

import (
	"net/http"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/apierror"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/middleware"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Niveles godoc
// @Summary Niveles de inventario
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.InventarioResponse
// @Router /api/inventario [get]
func (h *InventarioHandler) Niveles(c *gin.Context) {
	resp, err := h.svc.Niveles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ingresar godoc
// @Summary Registrar ingreso de combustible
// @Description Suma litros al inventario y deja un movimiento de auditoría.
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.IngresoInventarioRequest true "Litros ingresados"
// @Success 200 {object} dto.NivelInventarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/inventario [post]
func (h *InventarioHandler) Ingresar(c *gin.Context) {
	var req dto.IngresoInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Ingresar(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial godoc
// @Summary Historial de movimientos de inventario
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Param tipo_combustible query string false "gasolina | gasoil"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.HistorialInventarioResponse
// @Router /api/inventario/historial [get]
func (h *InventarioHandler) Historial(c *gin.Context) {
	var filter dto.HistorialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reset godoc
// @Summary Reiniciar inventario a cero
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Success 204
// @Router /api/inventario/reset [post]
func (h *InventarioHandler) Reset(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.Reset(c.Request.Context(), claims.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
