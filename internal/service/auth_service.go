package service

import (
	"context"
	"errors"
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/config"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Token subject types. The middleware gates routes on this claim.
const (
	TipoTokenOperador = "operador"
	TipoTokenCliente  = "cliente"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// LoginCliente authenticates a beneficiary by cédula alone; the kiosk
	// has no password flow.
	LoginCliente(ctx context.Context, req dto.LoginClienteRequest) (*dto.LoginClienteResponse, error)
}

type authService struct {
	usuarioRepo repository.UsuarioRepository
	clienteRepo repository.ClienteRepository
	cfg         *config.Config
}

func NewAuthService(usuarioRepo repository.UsuarioRepository, clienteRepo repository.ClienteRepository, cfg *config.Config) AuthService {
	return &authService{usuarioRepo: usuarioRepo, clienteRepo: clienteRepo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.usuarioRepo.FindByUsuario(ctx, req.Usuario)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	if !user.Activo {
		return nil, ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Contrasena), []byte(req.Contrasena)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	token, err := s.generateToken(user.ID, user.Nombre, TipoTokenOperador, user.EsAdmin)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioResponse{
			ID:      user.ID,
			Usuario: user.Usuario,
			Nombre:  user.Nombre,
			EsAdmin: user.EsAdmin,
		},
	}, nil
}

func (s *authService) LoginCliente(ctx context.Context, req dto.LoginClienteRequest) (*dto.LoginClienteResponse, error) {
	c, err := s.clienteRepo.FindByCedula(ctx, req.Cedula)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	if !c.Activo {
		return nil, ErrClienteNoEncontrado
	}

	token, err := s.generateToken(c.ID, c.Nombre, TipoTokenCliente, false)
	if err != nil {
		return nil, err
	}
	return &dto.LoginClienteResponse{
		Token:   token,
		Cliente: *clienteToResponse(c),
	}, nil
}

func (s *authService) generateToken(id int64, nombre, tipo string, esAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  id,
		"nombre":   nombre,
		"tipo":     tipo,
		"es_admin": esAdmin,
		"exp":      time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
