package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventarioCombustible holds the liters on hand for one fuel type. Exactly
// one row per fuel type exists for the system's lifetime; it is never deleted,
// only mutated (restock, processing debit, administrative reset).
type InventarioCombustible struct {
	ID                int64           `gorm:"primaryKey"`
	TipoCombustible   TipoCombustible `gorm:"type:varchar(10);uniqueIndex;not null"`
	LitrosDisponibles decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UpdatedAt         time.Time
}

// TableName overrides GORM's default pluralization.
func (InventarioCombustible) TableName() string { return "inventario_combustible" }

// Tipos de movimiento de inventario.
const (
	MovIngreso = "ingreso"
	MovEgreso  = "egreso"
	MovReset   = "reset"
)

// MovimientoInventario is an immutable audit row recorded on every inventory
// mutation. Movements are NEVER modified or deleted.
type MovimientoInventario struct {
	ID              int64           `gorm:"primaryKey"`
	TipoCombustible TipoCombustible `gorm:"type:varchar(10);not null;index"`
	Tipo            string          `gorm:"type:varchar(20);not null"`
	Litros          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// LitrosResultantes is the inventory level after applying the movement.
	LitrosResultantes decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UsuarioID         *int64          `gorm:"index"`
	// AgendamientoID links egresos to the processed withdrawal.
	AgendamientoID *int64
	Observaciones  *string
	CreatedAt      time.Time `gorm:"index"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
