package handler

import (
	"net/http"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/apierror"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Crear godoc
// @Summary Registrar un cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearClienteRequest true "Datos del cliente"
// @Success 201 {object} dto.ClienteResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar clientes
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param busqueda query string false "Nombre o cédula"
// @Param activo query string false "true | false | all"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.ClienteListResponse
// @Router /api/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	var filter dto.ClienteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorCedula godoc
// @Summary Buscar cliente por cédula
// @Description Búsqueda directa para la taquilla: el operador tipea la cédula que le dicta el cliente.
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param cedula path string true "Cédula del cliente"
// @Success 200 {object} dto.ClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/clientes/cedula/{cedula} [get]
func (h *ClientesHandler) ObtenerPorCedula(c *gin.Context) {
	resp, err := h.svc.PorCedula(c.Request.Context(), c.Param("cedula"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Desactivar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientesHandler) Reactivar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CrearSubcliente godoc
// @Summary Registrar un subcliente
// @Description Crea un trabajador bajo un cliente institucional. El cupo se descuenta del cupo del cliente padre.
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID del cliente padre"
// @Param body body dto.CrearSubclienteRequest true "Datos del subcliente"
// @Success 201 {object} dto.SubclienteResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/clientes/{id}/subclientes [post]
func (h *ClientesHandler) CrearSubcliente(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CrearSubclienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearSubcliente(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientesHandler) ListarSubclientes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarSubclientes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetSaldos godoc
// @Summary Reiniciar saldos mensuales
// @Description Restaura el saldo de todos los clientes y subclientes activos a su cupo mensual.
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResetSaldosResponse
// @Router /api/clientes/reset-saldos [post]
func (h *ClientesHandler) ResetSaldos(c *gin.Context) {
	resp, err := h.svc.ResetSaldos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
