package dto

import "github.com/shopspring/decimal"

type IngresoInventarioRequest struct {
	TipoCombustible  string          `json:"tipo_combustible"  validate:"required,oneof=gasolina gasoil"`
	LitrosIngresados decimal.Decimal `json:"litros_ingresados" validate:"required"`
	Observaciones    *string         `json:"observaciones"`
}

type NivelInventarioResponse struct {
	TipoCombustible   string          `json:"tipo_combustible"`
	LitrosDisponibles decimal.Decimal `json:"litros_disponibles"`
}

type InventarioResponse struct {
	Niveles []NivelInventarioResponse `json:"niveles"`
}

type MovimientoInventarioItem struct {
	ID                int64           `json:"id"`
	TipoCombustible   string          `json:"tipo_combustible"`
	Tipo              string          `json:"tipo"`
	Litros            decimal.Decimal `json:"litros"`
	LitrosResultantes decimal.Decimal `json:"litros_resultantes"`
	UsuarioNombre     *string         `json:"usuario_nombre,omitempty"`
	Observaciones     *string         `json:"observaciones,omitempty"`
	FechaIngreso      string          `json:"fecha_ingreso"`
}

type HistorialInventarioResponse struct {
	Data  []MovimientoInventarioItem `json:"data"`
	Total int64                      `json:"total"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
}

type HistorialFilter struct {
	TipoCombustible string `form:"tipo_combustible" validate:"omitempty,oneof=gasolina gasoil"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}
