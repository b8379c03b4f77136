package model

import "time"

// Usuario is an operator/administrator account. Clients authenticate
// separately, by cédula; see the clientes login endpoint.
type Usuario struct {
	ID         int64  `gorm:"primaryKey"`
	Usuario    string `gorm:"uniqueIndex;not null"`
	Contrasena string `gorm:"not null"` // bcrypt hash
	Nombre     string `gorm:"not null"`
	EsAdmin    bool   `gorm:"not null;default:false"`
	Activo     bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time
}
