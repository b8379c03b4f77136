package dto

import "github.com/shopspring/decimal"

type ActualizarLimiteRequest struct {
	Limite decimal.Decimal `json:"limite" validate:"required"`
	// Defaults to gasolina when omitted.
	TipoCombustible string `json:"tipo_combustible" validate:"omitempty,oneof=gasolina gasoil"`
}

type BloqueoRequest struct {
	Bloqueado *bool `json:"bloqueado" validate:"required"`
}

// UsoDia summarizes one day's cap consumption for one fuel type.
type UsoDia struct {
	Fecha      string          `json:"fecha"`
	Agendados  decimal.Decimal `json:"agendados"`
	Procesados decimal.Decimal `json:"procesados"`
	Disponible decimal.Decimal `json:"disponible"`
}

// LimitesCombustible groups today's and tomorrow's usage for one fuel type.
type LimitesCombustible struct {
	// LimiteDiario is null when no cap is enforced (gasoil without explicit config).
	LimiteDiario *decimal.Decimal `json:"limite_diario"`
	Hoy          UsoDia           `json:"hoy"`
	Manana       UsoDia           `json:"manana"`
}

// LimitesResponse is the payload of GET /api/sistema/limites. The top-level
// limite_diario/hoy/manana fields keep the gasolina-centric shape clients expect;
// the per-fuel map carries the full picture.
type LimitesResponse struct {
	LimiteDiario decimal.Decimal `json:"limite_diario"`
	Hoy          UsoDia          `json:"hoy"`
	Manana       UsoDia          `json:"manana"`

	Bloqueado    bool                          `json:"bloqueado"`
	Combustibles map[string]LimitesCombustible `json:"combustibles"`
}

type EstadisticasResponse struct {
	TotalClientes       int64           `json:"total_clientes"`
	LitrosProcesadosHoy decimal.Decimal `json:"litros_procesados_hoy"`
	LitrosProcesadosMes decimal.Decimal `json:"litros_procesados_mes"`
	AgendamientosHoy    int64           `json:"agendamientos_hoy"`
	InventarioGasolina  decimal.Decimal `json:"inventario_gasolina"`
	InventarioGasoil    decimal.Decimal `json:"inventario_gasoil"`
}
