package dto

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type AgendarRequest struct {
	ClienteID       int64           `json:"cliente_id"       validate:"required,min=1"`
	SubclienteID    *int64          `json:"subcliente_id"    validate:"omitempty,min=1"`
	TipoCombustible string          `json:"tipo_combustible" validate:"required,oneof=gasolina gasoil"`
	Litros          decimal.Decimal `json:"litros"           validate:"required"`
}

// AgendarResponse is what the kiosk prints on the ticket.
type AgendarResponse struct {
	ID                 int64           `json:"id"`
	CodigoTicket       int             `json:"codigo_ticket"`
	Ticket             string          `json:"ticket"` // zero-padded display form
	FechaAgendada      string          `json:"fecha_agendada"`
	TipoCombustible    string          `json:"tipo_combustible"`
	Litros             decimal.Decimal `json:"litros"`
	InventarioRestante decimal.Decimal `json:"inventario_restante"`
	SaldoRestante      decimal.Decimal `json:"saldo_restante"`
}

// FormatTicket renders a ticket number the way the pump displays it.
// Numbers above 999 simply widen; padding is display-only.
func FormatTicket(n int) string { return fmt.Sprintf("%03d", n) }

// AgendamientoDiaItem is one row of the daily operator sheet: the
// withdrawal joined with its client (and subclient, when present).
type AgendamientoDiaItem struct {
	ID               int64           `json:"id"`
	ClienteID        int64           `json:"cliente_id"`
	ClienteNombre    string          `json:"cliente_nombre"`
	Cedula           string          `json:"cedula"`
	Telefono         string          `json:"telefono"`
	Placa            *string         `json:"placa,omitempty"`
	SubclienteID     *int64          `json:"subcliente_id,omitempty"`
	SubclienteNombre *string         `json:"subcliente_nombre,omitempty"`
	SubclienteCedula *string         `json:"subcliente_cedula,omitempty"`
	TipoCombustible  string          `json:"tipo_combustible"`
	Litros           decimal.Decimal `json:"litros"`
	FechaAgendada    string          `json:"fecha_agendada"`
	CodigoTicket     int             `json:"codigo_ticket"`
	Estado           string          `json:"estado"`
	FechaCreacion    string          `json:"fecha_creacion"`
}

type ProcesarResponse struct {
	CodigoTicket       int             `json:"codigo_ticket"`
	InventarioRestante decimal.Decimal `json:"inventario_restante"`
}
