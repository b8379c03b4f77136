package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule rejections are expected and recoverable: handlers map them to
// 4xx responses carrying enough numeric context that the UI can explain the
// rejection without a follow-up query.

var (
	ErrAgendamientosBloqueados = errors.New("los agendamientos están bloqueados temporalmente")
	ErrLitrosInvalidos         = errors.New("la cantidad de litros debe ser mayor a cero")
	ErrTipoCombustibleInvalido = errors.New("tipo de combustible no válido")
	ErrClienteNoEncontrado     = errors.New("cliente no encontrado o inactivo")
	ErrSubclienteNoEncontrado  = errors.New("subcliente no encontrado o inactivo")
	ErrNoEncontrado            = errors.New("registro no encontrado")
	ErrInventarioAgotado       = errors.New("no hay combustible disponible en inventario")
	ErrCedulaOTelefonoEnUso    = errors.New("el número telefónico o cédula ya están registrados")
	ErrCedulaEnUso             = errors.New("la cédula ya está registrada")
	ErrCredencialesInvalidas   = errors.New("usuario o contraseña incorrectos")
	ErrFechaInvalida           = errors.New("fecha inválida, se espera YYYY-MM-DD")
)

// SaldoInsuficienteError rejects a debit that would overdraw the client's
// remaining monthly balance.
type SaldoInsuficienteError struct {
	Disponible decimal.Decimal
}

func (e *SaldoInsuficienteError) Error() string {
	return fmt.Sprintf("no hay suficientes litros disponibles (disponible: %s)", e.Disponible)
}

// LimiteExcedidoError rejects a reservation that would push the day's
// scheduled liters past the configured cap.
type LimiteExcedidoError struct {
	Limite     decimal.Decimal
	Agendado   decimal.Decimal
	Disponible decimal.Decimal
}

func (e *LimiteExcedidoError) Error() string {
	return fmt.Sprintf("límite diario excedido (límite: %s, agendado: %s, disponible: %s)",
		e.Limite, e.Agendado, e.Disponible)
}

// CupoExcedidoError rejects a subclient carve-out that would exceed the
// parent client's monthly allowance.
type CupoExcedidoError struct {
	TipoCombustible string
	CupoPadre       decimal.Decimal
	YaAsignado      decimal.Decimal
}

func (e *CupoExcedidoError) Error() string {
	return fmt.Sprintf("el cupo de %s excede el del cliente (cupo: %s, ya asignado: %s)",
		e.TipoCombustible, e.CupoPadre, e.YaAsignado)
}

// InventarioInsuficienteError is the processing-time guard: the withdrawal was
// scheduled but the shared inventory depleted before redemption. The row stays
// pendiente and the failure is surfaced to operators.
type InventarioInsuficienteError struct {
	Disponible decimal.Decimal
	Requerido  decimal.Decimal
}

func (e *InventarioInsuficienteError) Error() string {
	return fmt.Sprintf("inventario insuficiente para procesar (disponible: %s, requerido: %s)",
		e.Disponible, e.Requerido)
}

// EstadoInvalidoError rejects a state transition not allowed from the
// current estado (handlers map it to 409).
type EstadoInvalidoError struct {
	Actual string
}

func (e *EstadoInvalidoError) Error() string {
	return fmt.Sprintf("transición no permitida desde el estado %q", e.Actual)
}
