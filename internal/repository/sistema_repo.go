package repository

import (
	"context"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SistemaRepository accesses the singleton system configuration row
// (global block switch + configured daily caps). The row is seeded by the
// schema bootstrap, so reads never miss.
type SistemaRepository interface {
	Get(ctx context.Context) (*model.SistemaConfig, error)
	GetTx(tx *gorm.DB) (*model.SistemaConfig, error)
	SetBloqueo(ctx context.Context, bloqueado bool) error
	SetLimite(ctx context.Context, tipo model.TipoCombustible, limite decimal.Decimal) error
}

type sistemaRepo struct{ db *gorm.DB }

func NewSistemaRepository(db *gorm.DB) SistemaRepository { return &sistemaRepo{db: db} }

func (r *sistemaRepo) Get(ctx context.Context) (*model.SistemaConfig, error) {
	return r.GetTx(r.db.WithContext(ctx))
}

func (r *sistemaRepo) GetTx(tx *gorm.DB) (*model.SistemaConfig, error) {
	var cfg model.SistemaConfig
	err := tx.First(&cfg, 1).Error
	return &cfg, err
}

func (r *sistemaRepo) SetBloqueo(ctx context.Context, bloqueado bool) error {
	return r.db.WithContext(ctx).Model(&model.SistemaConfig{}).
		Where("id = 1").Update("agendamientos_bloqueados", bloqueado).Error
}

func (r *sistemaRepo) SetLimite(ctx context.Context, tipo model.TipoCombustible, limite decimal.Decimal) error {
	col := "limite_diario_gasolina"
	if tipo == model.Gasoil {
		col = "limite_diario_gasoil"
	}
	return r.db.WithContext(ctx).Model(&model.SistemaConfig{}).
		Where("id = 1").Update(col, limite).Error
}
