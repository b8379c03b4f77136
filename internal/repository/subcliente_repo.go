package repository

import (
	"context"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubclienteRepository interface {
	Create(ctx context.Context, s *model.Subcliente) error
	FindByID(ctx context.Context, id int64) (*model.Subcliente, error)
	ListByCliente(ctx context.Context, clienteID int64) ([]model.Subcliente, error)
	ExisteCedula(ctx context.Context, cedula string) (bool, error)
	// SumCupos totals the allowances already carved out under a parent,
	// used to validate new carve-outs at creation time.
	SumCupos(ctx context.Context, clienteID int64) (gasolina, gasoil decimal.Decimal, err error)

	FindForUpdateTx(tx *gorm.DB, id int64) (*model.Subcliente, error)
	AjustarSaldoTx(tx *gorm.DB, id int64, tipo model.TipoCombustible, delta decimal.Decimal) error
	ResetSaldosTx(tx *gorm.DB) (int64, error)
}

type subclienteRepo struct{ db *gorm.DB }

func NewSubclienteRepository(db *gorm.DB) SubclienteRepository { return &subclienteRepo{db: db} }

func (r *subclienteRepo) Create(ctx context.Context, s *model.Subcliente) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subclienteRepo) FindByID(ctx context.Context, id int64) (*model.Subcliente, error) {
	var s model.Subcliente
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *subclienteRepo) ListByCliente(ctx context.Context, clienteID int64) ([]model.Subcliente, error) {
	var subs []model.Subcliente
	err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND activo = true", clienteID).
		Order("nombre ASC").Find(&subs).Error
	return subs, err
}

func (r *subclienteRepo) ExisteCedula(ctx context.Context, cedula string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subcliente{}).
		Where("cedula = ?", cedula).Count(&count).Error
	return count > 0, err
}

func (r *subclienteRepo) SumCupos(ctx context.Context, clienteID int64) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Gasolina decimal.Decimal
		Gasoil   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Subcliente{}).
		Select("COALESCE(SUM(cupo_mensual_gasolina), 0) AS gasolina, COALESCE(SUM(cupo_mensual_gasoil), 0) AS gasoil").
		Where("cliente_id = ? AND activo = true", clienteID).
		Scan(&row).Error
	return row.Gasolina, row.Gasoil, err
}

func (r *subclienteRepo) FindForUpdateTx(tx *gorm.DB, id int64) (*model.Subcliente, error) {
	var s model.Subcliente
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	return &s, err
}

func (r *subclienteRepo) AjustarSaldoTx(tx *gorm.DB, id int64, tipo model.TipoCombustible, delta decimal.Decimal) error {
	col := saldoCol(tipo)
	return tx.Model(&model.Subcliente{}).Where("id = ?", id).
		Update(col, gorm.Expr(col+" + ?", delta)).Error
}

func (r *subclienteRepo) ResetSaldosTx(tx *gorm.DB) (int64, error) {
	res := tx.Model(&model.Subcliente{}).Where("activo = true").Updates(map[string]interface{}{
		"litros_disponibles_gasolina": gorm.Expr("cupo_mensual_gasolina"),
		"litros_disponibles_gasoil":   gorm.Expr("cupo_mensual_gasoil"),
	})
	return res.RowsAffected, res.Error
}
