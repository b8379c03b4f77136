package repository

import (
	"context"
	"errors"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LimiteRepository manages the per-(fecha, fuel type) daily usage rows.
// Reservations for the same day serialize on the row lock so two clients
// racing for the last liters under the cap never both succeed.
type LimiteRepository interface {
	// FindForUpdateTx creates the row if missing and returns it locked.
	FindForUpdateTx(tx *gorm.DB, fecha string, tipo model.TipoCombustible) (*model.LimiteDiario, error)
	AjustarTx(tx *gorm.DB, fecha string, tipo model.TipoCombustible, deltaAgendados, deltaProcesados decimal.Decimal) error
	// UsoDelDia is the read-only view; absent rows read as zero usage.
	UsoDelDia(ctx context.Context, fecha string, tipo model.TipoCombustible) (*model.LimiteDiario, error)
}

type limiteRepo struct{ db *gorm.DB }

func NewLimiteRepository(db *gorm.DB) LimiteRepository { return &limiteRepo{db: db} }

func (r *limiteRepo) FindForUpdateTx(tx *gorm.DB, fecha string, tipo model.TipoCombustible) (*model.LimiteDiario, error) {
	// Upsert first: the unique (fecha, tipo) index absorbs creation races,
	// then the locked read serializes reservations.
	if err := tx.Exec(
		`INSERT INTO limites_diarios (fecha, tipo_combustible, litros_agendados, litros_procesados, updated_at)
		 VALUES (?, ?, 0, 0, NOW())
		 ON CONFLICT (fecha, tipo_combustible) DO NOTHING`,
		fecha, tipo,
	).Error; err != nil {
		return nil, err
	}

	var lim model.LimiteDiario
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fecha = ? AND tipo_combustible = ?", fecha, tipo).
		First(&lim).Error
	return &lim, err
}

func (r *limiteRepo) AjustarTx(tx *gorm.DB, fecha string, tipo model.TipoCombustible, deltaAgendados, deltaProcesados decimal.Decimal) error {
	updates := map[string]interface{}{}
	if !deltaAgendados.IsZero() {
		updates["litros_agendados"] = gorm.Expr("litros_agendados + ?", deltaAgendados)
	}
	if !deltaProcesados.IsZero() {
		updates["litros_procesados"] = gorm.Expr("litros_procesados + ?", deltaProcesados)
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&model.LimiteDiario{}).
		Where("fecha = ? AND tipo_combustible = ?", fecha, tipo).
		Updates(updates).Error
}

func (r *limiteRepo) UsoDelDia(ctx context.Context, fecha string, tipo model.TipoCombustible) (*model.LimiteDiario, error) {
	var lim model.LimiteDiario
	err := r.db.WithContext(ctx).
		Where("fecha = ? AND tipo_combustible = ?", fecha, tipo).
		First(&lim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.LimiteDiario{Fecha: fecha, TipoCombustible: tipo}, nil
	}
	return &lim, err
}
