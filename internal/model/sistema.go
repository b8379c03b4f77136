package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LimiteDiario tracks liters reserved and processed per (fecha, fuel type)
// against the configured daily cap. Rows are created lazily the first time a
// day is scheduled against.
type LimiteDiario struct {
	ID              int64           `gorm:"primaryKey"`
	Fecha           string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_limites_fecha_tipo,priority:1"`
	TipoCombustible TipoCombustible `gorm:"type:varchar(10);not null;uniqueIndex:idx_limites_fecha_tipo,priority:2"`
	LitrosAgendados decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LitrosProcesados decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UpdatedAt       time.Time
}

// TableName overrides GORM's default pluralization.
func (LimiteDiario) TableName() string { return "limites_diarios" }

// TicketCounter is the singleton daily ticket sequencer. NumeroActual resets
// to 0 whenever FechaUltimoReset differs from wall-clock "today"; every
// increment runs under a row lock so concurrent requests never share a number.
type TicketCounter struct {
	ID               int64  `gorm:"primaryKey"`
	NumeroActual     int    `gorm:"not null;default:0"`
	FechaUltimoReset string `gorm:"type:varchar(10);not null;default:''"`
}

// TableName: singleton row, singular name.
func (TicketCounter) TableName() string { return "ticket_counter" }

// SistemaConfig is the singleton system configuration row.
// LimiteDiarioGasoil is nullable: when unset, no daily cap is enforced for
// gasoil (it must be configured explicitly, never guessed).
type SistemaConfig struct {
	ID                      int64            `gorm:"primaryKey"`
	AgendamientosBloqueados bool             `gorm:"not null;default:false"`
	LimiteDiarioGasolina    decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:2000"`
	LimiteDiarioGasoil      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	UpdatedAt               time.Time
}

// TableName overrides GORM's default pluralization.
func (SistemaConfig) TableName() string { return "sistema_config" }

// LimitePara returns the configured cap for a fuel type and whether one is
// enforced at all.
func (c *SistemaConfig) LimitePara(t TipoCombustible) (decimal.Decimal, bool) {
	if t == Gasoil {
		if c.LimiteDiarioGasoil == nil {
			return decimal.Zero, false
		}
		return *c.LimiteDiarioGasoil, true
	}
	return c.LimiteDiarioGasolina, true
}
