package dto

import "github.com/shopspring/decimal"

type LoginRequest struct {
	Usuario    string `json:"usuario"    validate:"required"`
	Contrasena string `json:"contrasena" validate:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

type UsuarioResponse struct {
	ID      int64  `json:"id"`
	Usuario string `json:"usuario"`
	Nombre  string `json:"nombre"`
	EsAdmin bool   `json:"es_admin"`
}

// LoginClienteRequest authenticates a beneficiary by national id only,
// matching the kiosk flow.
type LoginClienteRequest struct {
	Cedula string `json:"cedula" validate:"required,numeric,min=7,max=8"`
}

type LoginClienteResponse struct {
	Token   string          `json:"token"`
	Cliente ClienteResponse `json:"cliente"`
}

// SaldoResponse reports one fuel type's allowance and remaining balance.
type SaldoResponse struct {
	CupoMensual decimal.Decimal `json:"cupo_mensual"`
	Disponible  decimal.Decimal `json:"litros_disponibles"`
}
