package service

import (
	"context"
	"testing"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClienteFixture() (ClienteService, *stubClienteRepo, *stubSubclienteRepo) {
	repo := newStubClienteRepo()
	subs := newStubSubclienteRepo()
	return NewClienteService(repo, subs), repo, subs
}

func TestCrearClienteArrancaConSaldoCompleto(t *testing.T) {
	svc, _, _ := newClienteFixture()

	resp, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:       "María Lourdes Pérez",
		Cedula:       "15443322",
		Telefono:     "04121113344",
		CupoGasolina: decimal.NewFromInt(120),
		CupoGasoil:   decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoriaPersonaNatural, resp.Categoria)
	assert.True(t, resp.Activo)
	assert.True(t, resp.Gasolina.CupoMensual.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.Gasolina.Disponible.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.Gasoil.Disponible.Equal(decimal.NewFromInt(60)))
}

func TestCrearClienteCedulaOTelefonoDuplicado(t *testing.T) {
	svc, _, _ := newClienteFixture()

	req := dto.CrearClienteRequest{
		Nombre:   "María Lourdes Pérez",
		Cedula:   "15443322",
		Telefono: "04121113344",
	}
	_, err := svc.Crear(context.Background(), req)
	require.NoError(t, err)

	req.Telefono = "04160005566"
	_, err = svc.Crear(context.Background(), req)
	assert.ErrorIs(t, err, ErrCedulaOTelefonoEnUso)
}

func TestActualizarClienteNoTocaSaldos(t *testing.T) {
	svc, repo, _ := newClienteFixture()

	creado, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:       "María Lourdes Pérez",
		Cedula:       "15443322",
		Telefono:     "04121113344",
		CupoGasolina: decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	// Consume part of the balance, then raise the allowance.
	c, _ := repo.FindByID(context.Background(), creado.ID)
	c.SaldoGasolina = decimal.NewFromInt(30)

	resp, err := svc.Actualizar(context.Background(), creado.ID, dto.ActualizarClienteRequest{
		Nombre:       "María Lourdes Pérez de Soto",
		Telefono:     "04121113344",
		CupoGasolina: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	assert.True(t, resp.Gasolina.CupoMensual.Equal(decimal.NewFromInt(200)))
	// The new allowance kicks in at the next reset, not immediately.
	assert.True(t, resp.Gasolina.Disponible.Equal(decimal.NewFromInt(30)))
}

func TestDesactivarYReactivar(t *testing.T) {
	svc, repo, _ := newClienteFixture()

	creado, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre: "Luis Rondón", Cedula: "9887766", Telefono: "04140001122",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Desactivar(context.Background(), creado.ID))
	c, _ := repo.FindByID(context.Background(), creado.ID)
	assert.False(t, c.Activo)

	require.NoError(t, svc.Reactivar(context.Background(), creado.ID))
	assert.True(t, c.Activo)

	assert.ErrorIs(t, svc.Desactivar(context.Background(), 999), ErrClienteNoEncontrado)
}

func TestCrearSubclienteReparteElCupoDelPadre(t *testing.T) {
	svc, _, _ := newClienteFixture()

	padre, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:       "Consejo Comunal El Valle",
		Cedula:       "20113344",
		Telefono:     "04269990011",
		Categoria:    "Gobernación",
		CupoGasolina: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	sub, err := svc.CrearSubcliente(context.Background(), padre.ID, dto.CrearSubclienteRequest{
		Nombre:       "Ramón Aguilera",
		Cedula:       "17556677",
		CupoGasolina: decimal.NewFromInt(70),
	})
	require.NoError(t, err)
	assert.True(t, sub.Gasolina.Disponible.Equal(decimal.NewFromInt(70)))

	// A second carve-out that would push the sum past 100 is refused.
	_, err = svc.CrearSubcliente(context.Background(), padre.ID, dto.CrearSubclienteRequest{
		Nombre:       "Ana Aguilera",
		Cedula:       "18667788",
		CupoGasolina: decimal.NewFromInt(40),
	})
	var cupoErr *CupoExcedidoError
	require.ErrorAs(t, err, &cupoErr)
	assert.Equal(t, string(model.Gasolina), cupoErr.TipoCombustible)
	assert.True(t, cupoErr.CupoPadre.Equal(decimal.NewFromInt(100)))
	assert.True(t, cupoErr.YaAsignado.Equal(decimal.NewFromInt(70)))
}

func TestCrearSubclienteCedulaDuplicada(t *testing.T) {
	svc, _, _ := newClienteFixture()

	padre, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre: "Consejo Comunal El Valle", Cedula: "20113344", Telefono: "04269990011",
		CupoGasolina: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	req := dto.CrearSubclienteRequest{Nombre: "Ramón Aguilera", Cedula: "17556677"}
	_, err = svc.CrearSubcliente(context.Background(), padre.ID, req)
	require.NoError(t, err)

	_, err = svc.CrearSubcliente(context.Background(), padre.ID, req)
	assert.ErrorIs(t, err, ErrCedulaEnUso)
}

func TestResetSaldos(t *testing.T) {
	svc, repo, subsRepo := newClienteFixture()

	c1, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre: "Pedro Marcano", Cedula: "12345678", Telefono: "04141234567",
		CupoGasolina: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre: "Luis Rondón", Cedula: "9887766", Telefono: "04140001122",
		CupoGasolina: decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	sub, err := svc.CrearSubcliente(context.Background(), c1.ID, dto.CrearSubclienteRequest{
		Nombre: "Carmen Rivas", Cedula: "87654321", CupoGasolina: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// Simulate a month of consumption.
	repo.clientes[c1.ID].SaldoGasolina = decimal.Zero
	subsRepo.subs[sub.ID].SaldoGasolina = decimal.NewFromInt(5)

	resp, err := svc.ResetSaldos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ClientesActualizados)
	assert.Equal(t, int64(1), resp.SubclientesActualizados)
	assert.True(t, repo.clientes[c1.ID].SaldoGasolina.Equal(decimal.NewFromInt(120)))
	assert.True(t, subsRepo.subs[sub.ID].SaldoGasolina.Equal(decimal.NewFromInt(50)))
}
