package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del agendamiento. "procesado" (redeemed against inventory) and
// "entregado" (physical pickup confirmed) are independent transitions from
// "pendiente"; neither one requires the other to have happened first.
const (
	EstadoPendiente = "pendiente"
	EstadoProcesado = "procesado"
	EstadoEntregado = "entregado"
	EstadoCancelado = "cancelado"
)

// Agendamiento is a next-day fuel withdrawal reservation. The client's balance
// and the daily cap are debited when the row is created; inventory is debited
// only when the row is processed.
type Agendamiento struct {
	ID              int64           `gorm:"primaryKey"`
	ClienteID       int64           `gorm:"not null;index"`
	SubclienteID    *int64          `gorm:"index"`
	TipoCombustible TipoCombustible `gorm:"type:varchar(10);not null"`
	Litros          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// FechaAgendada is the intended pickup day (ISO date). CodigoTicket is
	// unique within it; the pair backs the day's turn order at the pump.
	FechaAgendada string `gorm:"type:varchar(10);not null;uniqueIndex:idx_agendamientos_fecha_ticket,priority:1"`
	CodigoTicket  int    `gorm:"not null;uniqueIndex:idx_agendamientos_fecha_ticket,priority:2"`
	Estado        string `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	CreatedAt     time.Time

	Cliente    *Cliente    `gorm:"foreignKey:ClienteID"`
	Subcliente *Subcliente `gorm:"foreignKey:SubclienteID"`
}

// TableName overrides GORM's default pluralization.
func (Agendamiento) TableName() string { return "agendamientos" }
