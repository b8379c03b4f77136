package service

import (
	"context"
	"testing"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/config"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[string]*model.Usuario
}

func (r *stubUsuarioRepo) FindByUsuario(_ context.Context, usuario string) (*model.Usuario, error) {
	u, ok := r.usuarios[usuario]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.Usuario] = u
	return nil
}

func (r *stubUsuarioRepo) Upsert(_ context.Context, u *model.Usuario) error {
	return r.Create(context.Background(), u)
}

func newAuthFixture(t *testing.T) (AuthService, *stubUsuarioRepo, *stubClienteRepo, *config.Config) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)

	usuarios := &stubUsuarioRepo{usuarios: map[string]*model.Usuario{
		"operador1": {ID: 1, Usuario: "operador1", Contrasena: string(hash), Nombre: "Operador Uno", Activo: true},
		"admin":     {ID: 2, Usuario: "admin", Contrasena: string(hash), Nombre: "Admin", EsAdmin: true, Activo: true},
		"baja":      {ID: 3, Usuario: "baja", Contrasena: string(hash), Nombre: "Dado de Baja", Activo: false},
	}}
	clientes := newStubClienteRepo()
	cfg := &config.Config{JWTSecret: "clave-de-prueba", JWTExpirationHours: 8}
	return NewAuthService(usuarios, clientes, cfg), usuarios, clientes, cfg
}

func parseClaims(t *testing.T, cfg *config.Config, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestLoginOperador(t *testing.T) {
	svc, _, _, cfg := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Usuario: "operador1", Contrasena: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Operador Uno", resp.Usuario.Nombre)
	assert.False(t, resp.Usuario.EsAdmin)

	claims := parseClaims(t, cfg, resp.Token)
	assert.Equal(t, TipoTokenOperador, claims["tipo"])
	assert.Equal(t, false, claims["es_admin"])
}

func TestLoginAdminLlevaClaim(t *testing.T) {
	svc, _, _, cfg := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Usuario: "admin", Contrasena: "secreta123",
	})
	require.NoError(t, err)

	claims := parseClaims(t, cfg, resp.Token)
	assert.Equal(t, true, claims["es_admin"])
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Usuario: "operador1", Contrasena: "equivocada",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Usuario: "inexistente", Contrasena: "secreta123",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	// Deactivated accounts get the same opaque rejection.
	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Usuario: "baja", Contrasena: "secreta123",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLoginClientePorCedula(t *testing.T) {
	svc, _, clientes, cfg := newAuthFixture(t)
	c := &model.Cliente{
		Nombre:        "Pedro Marcano",
		Cedula:        "12345678",
		Telefono:      "04141234567",
		SaldoGasolina: decimal.NewFromInt(80),
		Activo:        true,
	}
	require.NoError(t, clientes.Create(context.Background(), c))

	resp, err := svc.LoginCliente(context.Background(), dto.LoginClienteRequest{Cedula: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "Pedro Marcano", resp.Cliente.Nombre)
	assert.True(t, resp.Cliente.Gasolina.Disponible.Equal(decimal.NewFromInt(80)))

	claims := parseClaims(t, cfg, resp.Token)
	assert.Equal(t, TipoTokenCliente, claims["tipo"])

	_, err = svc.LoginCliente(context.Background(), dto.LoginClienteRequest{Cedula: "99999999"})
	assert.ErrorIs(t, err, ErrClienteNoEncontrado)
}

func TestLoginClienteInactivo(t *testing.T) {
	svc, _, clientes, _ := newAuthFixture(t)
	c := &model.Cliente{Nombre: "Baja", Cedula: "7001122", Telefono: "04240001122", Activo: false}
	require.NoError(t, clientes.Create(context.Background(), c))

	_, err := svc.LoginCliente(context.Background(), dto.LoginClienteRequest{Cedula: "7001122"})
	assert.ErrorIs(t, err, ErrClienteNoEncontrado)
}
