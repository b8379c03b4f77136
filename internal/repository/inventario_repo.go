package repository

import (
	"context"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventarioRepository manages the per-fuel inventory rows and their
// append-only movement history.
type InventarioRepository interface {
	Niveles(ctx context.Context) ([]model.InventarioCombustible, error)
	Nivel(ctx context.Context, tipo model.TipoCombustible) (*model.InventarioCombustible, error)
	Historial(ctx context.Context, filter dto.HistorialFilter) ([]model.MovimientoInventario, int64, error)

	// FindForUpdateTx locks the fuel row so concurrent debits serialize.
	FindForUpdateTx(tx *gorm.DB, tipo model.TipoCombustible) (*model.InventarioCombustible, error)
	AjustarTx(tx *gorm.DB, tipo model.TipoCombustible, delta decimal.Decimal) error
	SetNivelTx(tx *gorm.DB, tipo model.TipoCombustible, nivel decimal.Decimal) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoInventario) error

	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) DB() *gorm.DB { return r.db }

func (r *inventarioRepo) Niveles(ctx context.Context) ([]model.InventarioCombustible, error) {
	var niveles []model.InventarioCombustible
	err := r.db.WithContext(ctx).Order("tipo_combustible ASC").Find(&niveles).Error
	return niveles, err
}

func (r *inventarioRepo) Nivel(ctx context.Context, tipo model.TipoCombustible) (*model.InventarioCombustible, error) {
	var inv model.InventarioCombustible
	err := r.db.WithContext(ctx).Where("tipo_combustible = ?", tipo).First(&inv).Error
	return &inv, err
}

func (r *inventarioRepo) Historial(ctx context.Context, filter dto.HistorialFilter) ([]model.MovimientoInventario, int64, error) {
	var movs []model.MovimientoInventario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MovimientoInventario{})
	if filter.TipoCombustible != "" {
		q = q.Where("tipo_combustible = ?", filter.TipoCombustible)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Usuario").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&movs).Error
	return movs, total, err
}

func (r *inventarioRepo) FindForUpdateTx(tx *gorm.DB, tipo model.TipoCombustible) (*model.InventarioCombustible, error) {
	var inv model.InventarioCombustible
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tipo_combustible = ?", tipo).First(&inv).Error
	return &inv, err
}

func (r *inventarioRepo) AjustarTx(tx *gorm.DB, tipo model.TipoCombustible, delta decimal.Decimal) error {
	return tx.Model(&model.InventarioCombustible{}).
		Where("tipo_combustible = ?", tipo).
		Update("litros_disponibles", gorm.Expr("litros_disponibles + ?", delta)).Error
}

func (r *inventarioRepo) SetNivelTx(tx *gorm.DB, tipo model.TipoCombustible, nivel decimal.Decimal) error {
	return tx.Model(&model.InventarioCombustible{}).
		Where("tipo_combustible = ?", tipo).
		Update("litros_disponibles", nivel).Error
}

func (r *inventarioRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoInventario) error {
	return tx.Create(m).Error
}
