package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=3"`
	Cedula    string  `json:"cedula"    validate:"required,numeric,min=7,max=8"`
	Telefono  string  `json:"telefono"  validate:"required,min=7"`
	Direccion *string `json:"direccion"`
	Placa     *string `json:"placa"`
	Categoria string  `json:"categoria" validate:"omitempty,oneof='Persona Natural' 'Gobernación'"`
	// Monthly allowances per fuel type; balances start full.
	CupoGasolina decimal.Decimal `json:"cupo_mensual_gasolina" validate:"min=0"`
	CupoGasoil   decimal.Decimal `json:"cupo_mensual_gasoil"   validate:"min=0"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre"   validate:"required,min=3"`
	Telefono  string  `json:"telefono" validate:"required,min=7"`
	Direccion *string `json:"direccion"`
	Placa     *string `json:"placa"`
	// Allowance changes do not touch current balances; the next reset applies them.
	CupoGasolina decimal.Decimal `json:"cupo_mensual_gasolina" validate:"min=0"`
	CupoGasoil   decimal.Decimal `json:"cupo_mensual_gasoil"   validate:"min=0"`
}

type ClienteResponse struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	Cedula    string  `json:"cedula"`
	Telefono  string  `json:"telefono"`
	Direccion *string `json:"direccion,omitempty"`
	Placa     *string `json:"placa,omitempty"`
	Categoria string  `json:"categoria"`
	Activo    bool    `json:"activo"`

	Gasolina SaldoResponse `json:"gasolina"`
	Gasoil   SaldoResponse `json:"gasoil"`
}

type ClienteFilter struct {
	Busqueda string `form:"busqueda"`
	Activo   string `form:"activo,default=true"` // true | false | all
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type CrearSubclienteRequest struct {
	Nombre string  `json:"nombre" validate:"required,min=3"`
	Cedula string  `json:"cedula" validate:"required,numeric,min=7,max=8"`
	Placa  *string `json:"placa"`
	// Carved out of the parent's allowance; the sum across siblings may not
	// exceed the parent's cupo, checked at creation.
	CupoGasolina decimal.Decimal `json:"cupo_mensual_gasolina" validate:"min=0"`
	CupoGasoil   decimal.Decimal `json:"cupo_mensual_gasoil"   validate:"min=0"`
}

type SubclienteResponse struct {
	ID        int64   `json:"id"`
	ClienteID int64   `json:"cliente_id"`
	Nombre    string  `json:"nombre"`
	Cedula    string  `json:"cedula"`
	Placa     *string `json:"placa,omitempty"`
	Activo    bool    `json:"activo"`

	Gasolina SaldoResponse `json:"gasolina"`
	Gasoil   SaldoResponse `json:"gasoil"`
}

type ResetSaldosResponse struct {
	ClientesActualizados    int64 `json:"clientes_actualizados"`
	SubclientesActualizados int64 `json:"subclientes_actualizados"`
}
