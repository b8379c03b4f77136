package repository

import (
	"context"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// saldoCol maps a fuel type to its balance column.
func saldoCol(t model.TipoCombustible) string {
	if t == model.Gasoil {
		return "litros_disponibles_gasoil"
	}
	return "litros_disponibles_gasolina"
}

// ClienteRepository defines the data access contract for clients.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id int64) (*model.Cliente, error)
	FindByCedula(ctx context.Context, cedula string) (*model.Cliente, error)
	ExisteCedulaOTelefono(ctx context.Context, cedula, telefono string) (bool, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id int64) error
	Reactivar(ctx context.Context, id int64) error
	CountActivos(ctx context.Context) (int64, error)

	// Used inside transactions; callers must pass the tx instance.
	// FindForUpdateTx takes a row lock so check-then-adjust is race-safe.
	FindForUpdateTx(tx *gorm.DB, id int64) (*model.Cliente, error)
	AjustarSaldoTx(tx *gorm.DB, id int64, tipo model.TipoCombustible, delta decimal.Decimal) error

	// ResetSaldosTx restores every active client's balances to the full
	// monthly allowance. Returns the number of rows touched.
	ResetSaldosTx(tx *gorm.DB) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id int64) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) FindByCedula(ctx context.Context, cedula string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("cedula = ? AND activo = true", cedula).First(&c).Error
	return &c, err
}

func (r *clienteRepo) ExisteCedulaOTelefono(ctx context.Context, cedula, telefono string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("cedula = ? OR telefono = ?", cedula, telefono).
		Count(&count).Error
	return count > 0, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Busqueda != "" {
		like := "%" + filter.Busqueda + "%"
		q = q.Where("nombre ILIKE ? OR cedula LIKE ? OR telefono LIKE ?", like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *clienteRepo) Reactivar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *clienteRepo) CountActivos(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("activo = true").Count(&count).Error
	return count, err
}

func (r *clienteRepo) FindForUpdateTx(tx *gorm.DB, id int64) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) AjustarSaldoTx(tx *gorm.DB, id int64, tipo model.TipoCombustible, delta decimal.Decimal) error {
	col := saldoCol(tipo)
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update(col, gorm.Expr(col+" + ?", delta)).Error
}

func (r *clienteRepo) ResetSaldosTx(tx *gorm.DB) (int64, error) {
	res := tx.Model(&model.Cliente{}).Where("activo = true").Updates(map[string]interface{}{
		"litros_disponibles_gasolina": gorm.Expr("cupo_mensual_gasolina"),
		"litros_disponibles_gasoil":   gorm.Expr("cupo_mensual_gasoil"),
	})
	return res.RowsAffected, res.Error
}
