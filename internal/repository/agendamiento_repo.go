package repository

import (
	"context"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AgendamientoRepository interface {
	CreateTx(tx *gorm.DB, a *model.Agendamiento) error
	FindByID(ctx context.Context, id int64) (*model.Agendamiento, error)
	FindForUpdateTx(tx *gorm.DB, id int64) (*model.Agendamiento, error)
	// UpdateEstadoCondTx transitions estado only when the current value
	// matches desde; the returned row count tells the caller whether the
	// transition actually happened (idempotency / conflict guard).
	UpdateEstadoCondTx(tx *gorm.DB, id int64, desde, hasta string) (int64, error)
	ListByDia(ctx context.Context, fecha string) ([]model.Agendamiento, error)
	ListByCliente(ctx context.Context, clienteID int64, limit int) ([]model.Agendamiento, error)
	CountByDia(ctx context.Context, fecha string) (int64, error)
	SumProcesadosDesde(ctx context.Context, desde string) (decimal.Decimal, error)

	DB() *gorm.DB
}

type agendamientoRepo struct{ db *gorm.DB }

func NewAgendamientoRepository(db *gorm.DB) AgendamientoRepository {
	return &agendamientoRepo{db: db}
}

func (r *agendamientoRepo) DB() *gorm.DB { return r.db }

func (r *agendamientoRepo) CreateTx(tx *gorm.DB, a *model.Agendamiento) error {
	return tx.Create(a).Error
}

func (r *agendamientoRepo) FindByID(ctx context.Context, id int64) (*model.Agendamiento, error) {
	var a model.Agendamiento
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Subcliente").First(&a, id).Error
	return &a, err
}

func (r *agendamientoRepo) FindForUpdateTx(tx *gorm.DB, id int64) (*model.Agendamiento, error) {
	var a model.Agendamiento
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
	return &a, err
}

func (r *agendamientoRepo) UpdateEstadoCondTx(tx *gorm.DB, id int64, desde, hasta string) (int64, error) {
	res := tx.Model(&model.Agendamiento{}).
		Where("id = ? AND estado = ?", id, desde).
		Update("estado", hasta)
	return res.RowsAffected, res.Error
}

func (r *agendamientoRepo) ListByDia(ctx context.Context, fecha string) ([]model.Agendamiento, error) {
	var ags []model.Agendamiento
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Subcliente").
		Where("fecha_agendada = ?", fecha).
		Order("codigo_ticket ASC").
		Find(&ags).Error
	return ags, err
}

func (r *agendamientoRepo) ListByCliente(ctx context.Context, clienteID int64, limit int) ([]model.Agendamiento, error) {
	var ags []model.Agendamiento
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ags).Error
	return ags, err
}

func (r *agendamientoRepo) CountByDia(ctx context.Context, fecha string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Agendamiento{}).
		Where("fecha_agendada = ? AND estado <> ?", fecha, model.EstadoCancelado).
		Count(&count).Error
	return count, err
}

func (r *agendamientoRepo) SumProcesadosDesde(ctx context.Context, desde string) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Agendamiento{}).
		Select("COALESCE(SUM(litros), 0) AS total").
		Where("fecha_agendada >= ? AND estado = ?", desde, model.EstadoProcesado).
		Scan(&row).Error
	return row.Total, err
}
