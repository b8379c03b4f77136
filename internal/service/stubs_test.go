package service

// In-memory repository stubs. DB() returns nil so runTx executes the
// transactional closures directly, letting the business rules run without a
// database.

import (
	"context"
	"fmt"
	"strings"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Clientes ──────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[int64]*model.Cliente
	nextID   int64
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[int64]*model.Cliente)}
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.nextID++
	c.ID = r.nextID
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id int64) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByCedula(_ context.Context, cedula string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Cedula == cedula {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) ExisteCedulaOTelefono(_ context.Context, cedula, telefono string) (bool, error) {
	for _, c := range r.clientes {
		if c.Cedula == cedula || c.Telefono == telefono {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubClienteRepo) List(_ context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		if filter.Activo == "true" && !c.Activo {
			continue
		}
		if filter.Busqueda != "" && !strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(filter.Busqueda)) {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id int64) error {
	if c, ok := r.clientes[id]; ok {
		c.Activo = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) Reactivar(_ context.Context, id int64) error {
	if c, ok := r.clientes[id]; ok {
		c.Activo = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) CountActivos(_ context.Context) (int64, error) {
	var n int64
	for _, c := range r.clientes {
		if c.Activo {
			n++
		}
	}
	return n, nil
}

func (r *stubClienteRepo) FindForUpdateTx(_ *gorm.DB, id int64) (*model.Cliente, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubClienteRepo) AjustarSaldoTx(_ *gorm.DB, id int64, tipo model.TipoCombustible, delta decimal.Decimal) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if tipo == model.Gasoil {
		c.SaldoGasoil = c.SaldoGasoil.Add(delta)
	} else {
		c.SaldoGasolina = c.SaldoGasolina.Add(delta)
	}
	return nil
}

func (r *stubClienteRepo) ResetSaldosTx(_ *gorm.DB) (int64, error) {
	var n int64
	for _, c := range r.clientes {
		if !c.Activo {
			continue
		}
		c.SaldoGasolina = c.CupoGasolina
		c.SaldoGasoil = c.CupoGasoil
		n++
	}
	return n, nil
}

// ── Subclientes ───────────────────────────────────────────────────────────────

type stubSubclienteRepo struct {
	subs   map[int64]*model.Subcliente
	nextID int64
}

func newStubSubclienteRepo() *stubSubclienteRepo {
	return &stubSubclienteRepo{subs: make(map[int64]*model.Subcliente)}
}

func (r *stubSubclienteRepo) Create(_ context.Context, s *model.Subcliente) error {
	r.nextID++
	s.ID = r.nextID
	r.subs[s.ID] = s
	return nil
}

func (r *stubSubclienteRepo) FindByID(_ context.Context, id int64) (*model.Subcliente, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSubclienteRepo) ListByCliente(_ context.Context, clienteID int64) ([]model.Subcliente, error) {
	var out []model.Subcliente
	for _, s := range r.subs {
		if s.ClienteID == clienteID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSubclienteRepo) ExisteCedula(_ context.Context, cedula string) (bool, error) {
	for _, s := range r.subs {
		if s.Cedula == cedula {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSubclienteRepo) SumCupos(_ context.Context, clienteID int64) (decimal.Decimal, decimal.Decimal, error) {
	gasolina, gasoil := decimal.Zero, decimal.Zero
	for _, s := range r.subs {
		if s.ClienteID == clienteID && s.Activo {
			gasolina = gasolina.Add(s.CupoGasolina)
			gasoil = gasoil.Add(s.CupoGasoil)
		}
	}
	return gasolina, gasoil, nil
}

func (r *stubSubclienteRepo) FindForUpdateTx(_ *gorm.DB, id int64) (*model.Subcliente, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSubclienteRepo) AjustarSaldoTx(_ *gorm.DB, id int64, tipo model.TipoCombustible, delta decimal.Decimal) error {
	s, ok := r.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if tipo == model.Gasoil {
		s.SaldoGasoil = s.SaldoGasoil.Add(delta)
	} else {
		s.SaldoGasolina = s.SaldoGasolina.Add(delta)
	}
	return nil
}

func (r *stubSubclienteRepo) ResetSaldosTx(_ *gorm.DB) (int64, error) {
	var n int64
	for _, s := range r.subs {
		if !s.Activo {
			continue
		}
		s.SaldoGasolina = s.CupoGasolina
		s.SaldoGasoil = s.CupoGasoil
		n++
	}
	return n, nil
}

// ── Agendamientos ─────────────────────────────────────────────────────────────

type stubAgendamientoRepo struct {
	rows   map[int64]*model.Agendamiento
	nextID int64
}

func newStubAgendamientoRepo() *stubAgendamientoRepo {
	return &stubAgendamientoRepo{rows: make(map[int64]*model.Agendamiento)}
}

func (r *stubAgendamientoRepo) DB() *gorm.DB { return nil }

func (r *stubAgendamientoRepo) CreateTx(_ *gorm.DB, a *model.Agendamiento) error {
	r.nextID++
	a.ID = r.nextID
	r.rows[a.ID] = a
	return nil
}

func (r *stubAgendamientoRepo) FindByID(_ context.Context, id int64) (*model.Agendamiento, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAgendamientoRepo) FindForUpdateTx(_ *gorm.DB, id int64) (*model.Agendamiento, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubAgendamientoRepo) UpdateEstadoCondTx(_ *gorm.DB, id int64, desde, hasta string) (int64, error) {
	a, ok := r.rows[id]
	if !ok || a.Estado != desde {
		return 0, nil
	}
	a.Estado = hasta
	return 1, nil
}

func (r *stubAgendamientoRepo) ListByDia(_ context.Context, fecha string) ([]model.Agendamiento, error) {
	var out []model.Agendamiento
	for _, a := range r.rows {
		if a.FechaAgendada == fecha {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAgendamientoRepo) ListByCliente(_ context.Context, clienteID int64, _ int) ([]model.Agendamiento, error) {
	var out []model.Agendamiento
	for _, a := range r.rows {
		if a.ClienteID == clienteID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAgendamientoRepo) CountByDia(_ context.Context, fecha string) (int64, error) {
	var n int64
	for _, a := range r.rows {
		if a.FechaAgendada == fecha && a.Estado != model.EstadoCancelado {
			n++
		}
	}
	return n, nil
}

func (r *stubAgendamientoRepo) SumProcesadosDesde(_ context.Context, desde string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range r.rows {
		if a.Estado == model.EstadoProcesado && a.FechaAgendada >= desde {
			total = total.Add(a.Litros)
		}
	}
	return total, nil
}

// ── Límites diarios ───────────────────────────────────────────────────────────

type stubLimiteRepo struct {
	rows map[string]*model.LimiteDiario
}

func newStubLimiteRepo() *stubLimiteRepo {
	return &stubLimiteRepo{rows: make(map[string]*model.LimiteDiario)}
}

func limiteKey(fecha string, tipo model.TipoCombustible) string {
	return fmt.Sprintf("%s|%s", fecha, tipo)
}

func (r *stubLimiteRepo) FindForUpdateTx(_ *gorm.DB, fecha string, tipo model.TipoCombustible) (*model.LimiteDiario, error) {
	key := limiteKey(fecha, tipo)
	if row, ok := r.rows[key]; ok {
		return row, nil
	}
	row := &model.LimiteDiario{
		Fecha:            fecha,
		TipoCombustible:  tipo,
		LitrosAgendados:  decimal.Zero,
		LitrosProcesados: decimal.Zero,
	}
	r.rows[key] = row
	return row, nil
}

func (r *stubLimiteRepo) AjustarTx(tx *gorm.DB, fecha string, tipo model.TipoCombustible, deltaAgendados, deltaProcesados decimal.Decimal) error {
	row, err := r.FindForUpdateTx(tx, fecha, tipo)
	if err != nil {
		return err
	}
	row.LitrosAgendados = row.LitrosAgendados.Add(deltaAgendados)
	row.LitrosProcesados = row.LitrosProcesados.Add(deltaProcesados)
	return nil
}

func (r *stubLimiteRepo) UsoDelDia(_ context.Context, fecha string, tipo model.TipoCombustible) (*model.LimiteDiario, error) {
	if row, ok := r.rows[limiteKey(fecha, tipo)]; ok {
		return row, nil
	}
	return &model.LimiteDiario{Fecha: fecha, TipoCombustible: tipo}, nil
}

// ── Ticket counter ────────────────────────────────────────────────────────────

type stubTicketRepo struct {
	numero int
	fecha  string
}

func (r *stubTicketRepo) NextTicketTx(_ *gorm.DB, hoy string) (int, error) {
	if r.fecha != hoy {
		r.numero = 0
		r.fecha = hoy
	}
	r.numero++
	return r.numero, nil
}

// ── Inventario ────────────────────────────────────────────────────────────────

type stubInventarioRepo struct {
	niveles     map[model.TipoCombustible]*model.InventarioCombustible
	movimientos []model.MovimientoInventario
}

func newStubInventarioRepo() *stubInventarioRepo {
	return &stubInventarioRepo{
		niveles: map[model.TipoCombustible]*model.InventarioCombustible{
			model.Gasolina: {ID: 1, TipoCombustible: model.Gasolina, LitrosDisponibles: decimal.Zero},
			model.Gasoil:   {ID: 2, TipoCombustible: model.Gasoil, LitrosDisponibles: decimal.Zero},
		},
	}
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

func (r *stubInventarioRepo) setNivel(tipo model.TipoCombustible, litros int64) {
	r.niveles[tipo].LitrosDisponibles = decimal.NewFromInt(litros)
}

func (r *stubInventarioRepo) Niveles(_ context.Context) ([]model.InventarioCombustible, error) {
	return []model.InventarioCombustible{*r.niveles[model.Gasolina], *r.niveles[model.Gasoil]}, nil
}

func (r *stubInventarioRepo) Nivel(_ context.Context, tipo model.TipoCombustible) (*model.InventarioCombustible, error) {
	return r.niveles[tipo], nil
}

func (r *stubInventarioRepo) Historial(_ context.Context, _ dto.HistorialFilter) ([]model.MovimientoInventario, int64, error) {
	return r.movimientos, int64(len(r.movimientos)), nil
}

func (r *stubInventarioRepo) FindForUpdateTx(_ *gorm.DB, tipo model.TipoCombustible) (*model.InventarioCombustible, error) {
	// Snapshot, like a real row load: later adjustments must not alias it.
	inv := *r.niveles[tipo]
	return &inv, nil
}

func (r *stubInventarioRepo) AjustarTx(_ *gorm.DB, tipo model.TipoCombustible, delta decimal.Decimal) error {
	n := r.niveles[tipo]
	n.LitrosDisponibles = n.LitrosDisponibles.Add(delta)
	return nil
}

func (r *stubInventarioRepo) SetNivelTx(_ *gorm.DB, tipo model.TipoCombustible, nivel decimal.Decimal) error {
	r.niveles[tipo].LitrosDisponibles = nivel
	return nil
}

func (r *stubInventarioRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	m.ID = int64(len(r.movimientos) + 1)
	r.movimientos = append(r.movimientos, *m)
	return nil
}

// ── Sistema ───────────────────────────────────────────────────────────────────

type stubSistemaRepo struct {
	cfg *model.SistemaConfig
}

func newStubSistemaRepo() *stubSistemaRepo {
	return &stubSistemaRepo{cfg: &model.SistemaConfig{
		ID:                   1,
		LimiteDiarioGasolina: decimal.NewFromInt(2000),
	}}
}

func (r *stubSistemaRepo) Get(_ context.Context) (*model.SistemaConfig, error) { return r.cfg, nil }
func (r *stubSistemaRepo) GetTx(_ *gorm.DB) (*model.SistemaConfig, error)      { return r.cfg, nil }

func (r *stubSistemaRepo) SetBloqueo(_ context.Context, bloqueado bool) error {
	r.cfg.AgendamientosBloqueados = bloqueado
	return nil
}

func (r *stubSistemaRepo) SetLimite(_ context.Context, tipo model.TipoCombustible, limite decimal.Decimal) error {
	if tipo == model.Gasoil {
		r.cfg.LimiteDiarioGasoil = &limite
	} else {
		r.cfg.LimiteDiarioGasolina = limite
	}
	return nil
}
