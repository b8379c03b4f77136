package handler

import (
	"net/http"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de operador
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoginCliente godoc
// @Summary Login de beneficiario por cédula
// @Description El kiosco autentica beneficiarios solo con la cédula registrada.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginClienteRequest true "Cédula"
// @Success 200 {object} dto.LoginClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/clientes/login [post]
func (h *AuthHandler) LoginCliente(c *gin.Context) {
	var req dto.LoginClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.LoginCliente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
