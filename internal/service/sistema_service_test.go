package service

import (
	"context"
	"testing"
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sistemaFixture struct {
	sistema    *stubSistemaRepo
	limites    *stubLimiteRepo
	clientes   *stubClienteRepo
	repo       *stubAgendamientoRepo
	inventario *stubInventarioRepo
	svc        *sistemaService
}

func newSistemaFixture() *sistemaFixture {
	f := &sistemaFixture{
		sistema:    newStubSistemaRepo(),
		limites:    newStubLimiteRepo(),
		clientes:   newStubClienteRepo(),
		repo:       newStubAgendamientoRepo(),
		inventario: newStubInventarioRepo(),
	}
	svc := NewSistemaService(
		f.sistema, f.limites, f.clientes, f.repo, f.inventario,
		nil, time.UTC, // sin Redis: siempre construye en vivo
	).(*sistemaService)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	}
	f.svc = svc
	return f
}

func TestLimitesReportaHoyYManana(t *testing.T) {
	f := newSistemaFixture()
	require.NoError(t, f.limites.AjustarTx(nil, "2026-03-10", model.Gasolina, decimal.NewFromInt(500), decimal.NewFromInt(300)))
	require.NoError(t, f.limites.AjustarTx(nil, "2026-03-11", model.Gasolina, decimal.NewFromInt(800), decimal.Zero))

	resp, err := f.svc.Limites(context.Background())
	require.NoError(t, err)

	assert.False(t, resp.Bloqueado)
	assert.True(t, resp.LimiteDiario.Equal(decimal.NewFromInt(2000)))

	assert.Equal(t, "2026-03-10", resp.Hoy.Fecha)
	assert.True(t, resp.Hoy.Agendados.Equal(decimal.NewFromInt(500)))
	assert.True(t, resp.Hoy.Procesados.Equal(decimal.NewFromInt(300)))
	assert.True(t, resp.Hoy.Disponible.Equal(decimal.NewFromInt(1500)))

	assert.Equal(t, "2026-03-11", resp.Manana.Fecha)
	assert.True(t, resp.Manana.Disponible.Equal(decimal.NewFromInt(1200)))
}

func TestLimitesGasoilSinLimiteConfigurado(t *testing.T) {
	f := newSistemaFixture()
	require.NoError(t, f.limites.AjustarTx(nil, "2026-03-11", model.Gasoil, decimal.NewFromInt(9000), decimal.Zero))

	resp, err := f.svc.Limites(context.Background())
	require.NoError(t, err)

	gasoil, ok := resp.Combustibles["gasoil"]
	require.True(t, ok)
	// No cap: the limit is absent and Disponible stays zero regardless of usage.
	assert.Nil(t, gasoil.LimiteDiario)
	assert.True(t, gasoil.Manana.Agendados.Equal(decimal.NewFromInt(9000)))
	assert.True(t, gasoil.Manana.Disponible.IsZero())

	gasolina := resp.Combustibles["gasolina"]
	require.NotNil(t, gasolina.LimiteDiario)
	assert.True(t, gasolina.LimiteDiario.Equal(decimal.NewFromInt(2000)))
}

func TestLimitesDisponibleNuncaNegativo(t *testing.T) {
	f := newSistemaFixture()
	f.sistema.cfg.LimiteDiarioGasolina = decimal.NewFromInt(100)
	// Usage above the cap happens when the cap is lowered mid-day.
	require.NoError(t, f.limites.AjustarTx(nil, "2026-03-10", model.Gasolina, decimal.NewFromInt(250), decimal.Zero))

	resp, err := f.svc.Limites(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Hoy.Disponible.IsZero())
}

func TestActualizarLimite(t *testing.T) {
	f := newSistemaFixture()

	err := f.svc.ActualizarLimite(context.Background(), dto.ActualizarLimiteRequest{
		Limite: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, ErrLitrosInvalidos)

	err = f.svc.ActualizarLimite(context.Background(), dto.ActualizarLimiteRequest{
		TipoCombustible: "kerosen",
		Limite:          decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrTipoCombustibleInvalido)

	// Sin tipo: aplica a gasolina.
	require.NoError(t, f.svc.ActualizarLimite(context.Background(), dto.ActualizarLimiteRequest{
		Limite: decimal.NewFromInt(3500),
	}))
	assert.True(t, f.sistema.cfg.LimiteDiarioGasolina.Equal(decimal.NewFromInt(3500)))

	require.NoError(t, f.svc.ActualizarLimite(context.Background(), dto.ActualizarLimiteRequest{
		TipoCombustible: "gasoil",
		Limite:          decimal.NewFromInt(1000),
	}))
	require.NotNil(t, f.sistema.cfg.LimiteDiarioGasoil)
	assert.True(t, f.sistema.cfg.LimiteDiarioGasoil.Equal(decimal.NewFromInt(1000)))
}

func TestSetBloqueo(t *testing.T) {
	f := newSistemaFixture()
	require.NoError(t, f.svc.SetBloqueo(context.Background(), true))
	assert.True(t, f.sistema.cfg.AgendamientosBloqueados)

	resp, err := f.svc.Limites(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Bloqueado)
}

func TestEstadisticas(t *testing.T) {
	f := newSistemaFixture()
	f.inventario.setNivel(model.Gasolina, 4000)
	f.inventario.setNivel(model.Gasoil, 1500)

	for _, c := range []*model.Cliente{
		{Nombre: "Pedro Marcano", Cedula: "12345678", Telefono: "04141234567", Activo: true},
		{Nombre: "Luis Rondón", Cedula: "9887766", Telefono: "04140001122", Activo: true},
		{Nombre: "Inactivo", Cedula: "1122334", Telefono: "04169998800", Activo: false},
	} {
		require.NoError(t, f.clientes.Create(context.Background(), c))
	}

	// Dos tickets hoy (uno procesado), uno cancelado que no cuenta.
	hoy := "2026-03-10"
	require.NoError(t, f.repo.CreateTx(nil, &model.Agendamiento{
		ClienteID: 1, TipoCombustible: model.Gasolina, Litros: decimal.NewFromInt(40),
		FechaAgendada: hoy, CodigoTicket: 1, Estado: model.EstadoProcesado,
	}))
	require.NoError(t, f.repo.CreateTx(nil, &model.Agendamiento{
		ClienteID: 2, TipoCombustible: model.Gasoil, Litros: decimal.NewFromInt(60),
		FechaAgendada: hoy, CodigoTicket: 2, Estado: model.EstadoPendiente,
	}))
	require.NoError(t, f.repo.CreateTx(nil, &model.Agendamiento{
		ClienteID: 2, TipoCombustible: model.Gasolina, Litros: decimal.NewFromInt(20),
		FechaAgendada: hoy, CodigoTicket: 3, Estado: model.EstadoCancelado,
	}))
	// Un procesado de un día anterior del mismo mes.
	require.NoError(t, f.repo.CreateTx(nil, &model.Agendamiento{
		ClienteID: 1, TipoCombustible: model.Gasolina, Litros: decimal.NewFromInt(25),
		FechaAgendada: "2026-03-02", CodigoTicket: 1, Estado: model.EstadoProcesado,
	}))
	require.NoError(t, f.limites.AjustarTx(nil, hoy, model.Gasolina, decimal.NewFromInt(40), decimal.NewFromInt(40)))

	resp, err := f.svc.Estadisticas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalClientes)
	assert.Equal(t, int64(2), resp.AgendamientosHoy)
	assert.True(t, resp.LitrosProcesadosHoy.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.LitrosProcesadosMes.Equal(decimal.NewFromInt(65)))
	assert.True(t, resp.InventarioGasolina.Equal(decimal.NewFromInt(4000)))
	assert.True(t, resp.InventarioGasoil.Equal(decimal.NewFromInt(1500)))
}
