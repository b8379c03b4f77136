package service

import (
	"context"
	"errors"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/repository"

	"gorm.io/gorm"
)

// ClienteService manages the beneficiary registry: clients, their
// institutional subclientes and the monthly balance reset.
type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id int64) (*dto.ClienteResponse, error)
	PorCedula(ctx context.Context, cedula string) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id int64) error
	Reactivar(ctx context.Context, id int64) error

	CrearSubcliente(ctx context.Context, clienteID int64, req dto.CrearSubclienteRequest) (*dto.SubclienteResponse, error)
	ListarSubclientes(ctx context.Context, clienteID int64) ([]dto.SubclienteResponse, error)

	// ResetSaldos refills every active balance back to its monthly allowance.
	// Meant to run at the start of each month.
	ResetSaldos(ctx context.Context) (*dto.ResetSaldosResponse, error)
}

type clienteService struct {
	repo           repository.ClienteRepository
	subclienteRepo repository.SubclienteRepository
}

func NewClienteService(repo repository.ClienteRepository, subclienteRepo repository.SubclienteRepository) ClienteService {
	return &clienteService{repo: repo, subclienteRepo: subclienteRepo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	existe, err := s.repo.ExisteCedulaOTelefono(ctx, req.Cedula, req.Telefono)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, ErrCedulaOTelefonoEnUso
	}

	categoria := req.Categoria
	if categoria == "" {
		categoria = model.CategoriaPersonaNatural
	}
	c := &model.Cliente{
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Placa:     req.Placa,
		Categoria: categoria,

		CupoGasolina: req.CupoGasolina,
		CupoGasoil:   req.CupoGasoil,
		// New clients start with a full month.
		SaldoGasolina: req.CupoGasolina,
		SaldoGasoil:   req.CupoGasoil,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Obtener(ctx context.Context, id int64) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) PorCedula(ctx context.Context, cedula string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByCedula(ctx, cedula)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		data = append(data, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id int64, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}

	c.Nombre = req.Nombre
	c.Telefono = req.Telefono
	c.Direccion = req.Direccion
	c.Placa = req.Placa
	// Current balances are untouched; new allowances apply at the next reset.
	c.CupoGasolina = req.CupoGasolina
	c.CupoGasoil = req.CupoGasoil

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Desactivar(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClienteNoEncontrado
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *clienteService) Reactivar(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClienteNoEncontrado
		}
		return err
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *clienteService) CrearSubcliente(ctx context.Context, clienteID int64, req dto.CrearSubclienteRequest) (*dto.SubclienteResponse, error) {
	padre, err := s.repo.FindByID(ctx, clienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}

	existe, err := s.subclienteRepo.ExisteCedula(ctx, req.Cedula)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, ErrCedulaEnUso
	}

	// The sum of children allowances may not exceed the parent's.
	sumGasolina, sumGasoil, err := s.subclienteRepo.SumCupos(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	if sumGasolina.Add(req.CupoGasolina).GreaterThan(padre.CupoGasolina) {
		return nil, &CupoExcedidoError{
			TipoCombustible: string(model.Gasolina),
			CupoPadre:       padre.CupoGasolina,
			YaAsignado:      sumGasolina,
		}
	}
	if sumGasoil.Add(req.CupoGasoil).GreaterThan(padre.CupoGasoil) {
		return nil, &CupoExcedidoError{
			TipoCombustible: string(model.Gasoil),
			CupoPadre:       padre.CupoGasoil,
			YaAsignado:      sumGasoil,
		}
	}

	sub := &model.Subcliente{
		ClienteID: clienteID,
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Placa:     req.Placa,

		CupoGasolina:  req.CupoGasolina,
		CupoGasoil:    req.CupoGasoil,
		SaldoGasolina: req.CupoGasolina,
		SaldoGasoil:   req.CupoGasoil,
		Activo:        true,
	}
	if err := s.subclienteRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return subclienteToResponse(sub), nil
}

func (s *clienteService) ListarSubclientes(ctx context.Context, clienteID int64) ([]dto.SubclienteResponse, error) {
	if _, err := s.repo.FindByID(ctx, clienteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	subs, err := s.subclienteRepo.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubclienteResponse, 0, len(subs))
	for i := range subs {
		out = append(out, *subclienteToResponse(&subs[i]))
	}
	return out, nil
}

func (s *clienteService) ResetSaldos(ctx context.Context) (*dto.ResetSaldosResponse, error) {
	var resp dto.ResetSaldosResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		clientes, err := s.repo.ResetSaldosTx(tx)
		if err != nil {
			return err
		}
		subclientes, err := s.subclienteRepo.ResetSaldosTx(tx)
		if err != nil {
			return err
		}
		resp = dto.ResetSaldosResponse{
			ClientesActualizados:    clientes,
			SubclientesActualizados: subclientes,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &resp, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Cedula:    c.Cedula,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		Placa:     c.Placa,
		Categoria: c.Categoria,
		Activo:    c.Activo,
		Gasolina:  dto.SaldoResponse{CupoMensual: c.CupoGasolina, Disponible: c.SaldoGasolina},
		Gasoil:    dto.SaldoResponse{CupoMensual: c.CupoGasoil, Disponible: c.SaldoGasoil},
	}
}

func subclienteToResponse(s *model.Subcliente) *dto.SubclienteResponse {
	return &dto.SubclienteResponse{
		ID:        s.ID,
		ClienteID: s.ClienteID,
		Nombre:    s.Nombre,
		Cedula:    s.Cedula,
		Placa:     s.Placa,
		Activo:    s.Activo,
		Gasolina:  dto.SaldoResponse{CupoMensual: s.CupoGasolina, Disponible: s.SaldoGasolina},
		Gasoil:    dto.SaldoResponse{CupoMensual: s.CupoGasoil, Disponible: s.SaldoGasoil},
	}
}
