package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de cliente según el programa de subsidio.
const (
	CategoriaPersonaNatural = "Persona Natural"
	CategoriaGobernacion    = "Gobernación"
)

// Cliente is a registered beneficiary of the subsidized fuel program.
// Monthly allowances and remaining balances are tracked per fuel type;
// balances drop at scheduling time, not at dispensing time.
type Cliente struct {
	ID        int64  `gorm:"primaryKey"`
	Nombre    string `gorm:"not null"`
	Cedula    string `gorm:"uniqueIndex;not null"`
	Telefono  string `gorm:"uniqueIndex;not null"`
	Direccion *string
	Placa     *string
	Categoria string `gorm:"not null;default:'Persona Natural'"`

	CupoGasolina  decimal.Decimal `gorm:"column:cupo_mensual_gasolina;type:decimal(10,2);not null;default:0"`
	CupoGasoil    decimal.Decimal `gorm:"column:cupo_mensual_gasoil;type:decimal(10,2);not null;default:0"`
	SaldoGasolina decimal.Decimal `gorm:"column:litros_disponibles_gasolina;type:decimal(10,2);not null;default:0"`
	SaldoGasoil   decimal.Decimal `gorm:"column:litros_disponibles_gasoil;type:decimal(10,2);not null;default:0"`

	// Soft delete: history of agendamientos must survive deactivation.
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cupo returns the monthly allowance for a fuel type.
func (c *Cliente) Cupo(t TipoCombustible) decimal.Decimal {
	if t == Gasoil {
		return c.CupoGasoil
	}
	return c.CupoGasolina
}

// Saldo returns the remaining balance for a fuel type.
func (c *Cliente) Saldo(t TipoCombustible) decimal.Decimal {
	if t == Gasoil {
		return c.SaldoGasoil
	}
	return c.SaldoGasolina
}

// Subcliente is a worker registered under an institutional client. Its
// allowances are carved out of the parent's at creation time.
type Subcliente struct {
	ID        int64  `gorm:"primaryKey"`
	ClienteID int64  `gorm:"not null;index"`
	Nombre    string `gorm:"not null"`
	Cedula    string `gorm:"uniqueIndex;not null"`
	Placa     *string

	CupoGasolina  decimal.Decimal `gorm:"column:cupo_mensual_gasolina;type:decimal(10,2);not null;default:0"`
	CupoGasoil    decimal.Decimal `gorm:"column:cupo_mensual_gasoil;type:decimal(10,2);not null;default:0"`
	SaldoGasolina decimal.Decimal `gorm:"column:litros_disponibles_gasolina;type:decimal(10,2);not null;default:0"`
	SaldoGasoil   decimal.Decimal `gorm:"column:litros_disponibles_gasoil;type:decimal(10,2);not null;default:0"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

// Cupo returns the monthly allowance for a fuel type.
func (s *Subcliente) Cupo(t TipoCombustible) decimal.Decimal {
	if t == Gasoil {
		return s.CupoGasoil
	}
	return s.CupoGasolina
}

// Saldo returns the remaining balance for a fuel type.
func (s *Subcliente) Saldo(t TipoCombustible) decimal.Decimal {
	if t == Gasoil {
		return s.SaldoGasoil
	}
	return s.SaldoGasolina
}
