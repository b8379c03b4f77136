package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventarioService manages the shared fuel stock. Every mutation appends an
// immutable movement row so the ingress/egress history is always auditable.
type InventarioService interface {
	Ingresar(ctx context.Context, usuarioID int64, req dto.IngresoInventarioRequest) (*dto.NivelInventarioResponse, error)
	Niveles(ctx context.Context) (*dto.InventarioResponse, error)
	Historial(ctx context.Context, filter dto.HistorialFilter) (*dto.HistorialInventarioResponse, error)
	Reset(ctx context.Context, usuarioID int64) error

	// DebitarTx performs the enforced inventory decrement inside the caller's
	// transaction. It fails cleanly (no partial decrement) when liters exceed
	// the level on hand; this is the true guard for the scheduling-time race.
	DebitarTx(tx *gorm.DB, tipo model.TipoCombustible, litros decimal.Decimal, agendamientoID int64) (decimal.Decimal, error)
}

type inventarioService struct {
	repo repository.InventarioRepository
}

func NewInventarioService(repo repository.InventarioRepository) InventarioService {
	return &inventarioService{repo: repo}
}

func (s *inventarioService) Ingresar(ctx context.Context, usuarioID int64, req dto.IngresoInventarioRequest) (*dto.NivelInventarioResponse, error) {
	if req.LitrosIngresados.LessThanOrEqual(decimal.Zero) {
		return nil, ErrLitrosInvalidos
	}
	tipo := model.TipoCombustible(req.TipoCombustible)
	if !tipo.Valido() {
		return nil, ErrTipoCombustibleInvalido
	}

	var nuevoNivel decimal.Decimal
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		inv, err := s.repo.FindForUpdateTx(tx, tipo)
		if err != nil {
			return err
		}
		if err := s.repo.AjustarTx(tx, tipo, req.LitrosIngresados); err != nil {
			return err
		}
		nuevoNivel = inv.LitrosDisponibles.Add(req.LitrosIngresados)

		uid := usuarioID
		mov := &model.MovimientoInventario{
			TipoCombustible:   tipo,
			Tipo:              model.MovIngreso,
			Litros:            req.LitrosIngresados,
			LitrosResultantes: nuevoNivel,
			UsuarioID:         &uid,
			Observaciones:     req.Observaciones,
		}
		return s.repo.CreateMovimientoTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.NivelInventarioResponse{
		TipoCombustible:   string(tipo),
		LitrosDisponibles: nuevoNivel,
	}, nil
}

func (s *inventarioService) Niveles(ctx context.Context) (*dto.InventarioResponse, error) {
	niveles, err := s.repo.Niveles(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.InventarioResponse{Niveles: make([]dto.NivelInventarioResponse, 0, len(niveles))}
	for _, n := range niveles {
		resp.Niveles = append(resp.Niveles, dto.NivelInventarioResponse{
			TipoCombustible:   string(n.TipoCombustible),
			LitrosDisponibles: n.LitrosDisponibles,
		})
	}
	return resp, nil
}

func (s *inventarioService) Historial(ctx context.Context, filter dto.HistorialFilter) (*dto.HistorialInventarioResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movs, total, err := s.repo.Historial(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoInventarioItem, 0, len(movs))
	for _, m := range movs {
		item := dto.MovimientoInventarioItem{
			ID:                m.ID,
			TipoCombustible:   string(m.TipoCombustible),
			Tipo:              m.Tipo,
			Litros:            m.Litros,
			LitrosResultantes: m.LitrosResultantes,
			Observaciones:     m.Observaciones,
			FechaIngreso:      m.CreatedAt.Format(time.RFC3339),
		}
		if m.Usuario != nil {
			item.UsuarioNombre = &m.Usuario.Nombre
		}
		items = append(items, item)
	}
	return &dto.HistorialInventarioResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Reset zeroes every fuel level, one movement per fuel type for the audit trail.
func (s *inventarioService) Reset(ctx context.Context, usuarioID int64) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, tipo := range model.Tipos() {
			inv, err := s.repo.FindForUpdateTx(tx, tipo)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if inv.LitrosDisponibles.IsZero() {
				continue
			}
			if err := s.repo.SetNivelTx(tx, tipo, decimal.Zero); err != nil {
				return err
			}
			uid := usuarioID
			obs := "Reset administrativo de inventario"
			mov := &model.MovimientoInventario{
				TipoCombustible:   tipo,
				Tipo:              model.MovReset,
				Litros:            inv.LitrosDisponibles.Neg(),
				LitrosResultantes: decimal.Zero,
				UsuarioID:         &uid,
				Observaciones:     &obs,
			}
			if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *inventarioService) DebitarTx(tx *gorm.DB, tipo model.TipoCombustible, litros decimal.Decimal, agendamientoID int64) (decimal.Decimal, error) {
	inv, err := s.repo.FindForUpdateTx(tx, tipo)
	if err != nil {
		return decimal.Zero, err
	}
	if inv.LitrosDisponibles.LessThan(litros) {
		return decimal.Zero, &InventarioInsuficienteError{
			Disponible: inv.LitrosDisponibles,
			Requerido:  litros,
		}
	}
	if err := s.repo.AjustarTx(tx, tipo, litros.Neg()); err != nil {
		return decimal.Zero, err
	}
	nuevoNivel := inv.LitrosDisponibles.Sub(litros)

	aid := agendamientoID
	obs := fmt.Sprintf("Procesamiento de agendamiento #%d", agendamientoID)
	mov := &model.MovimientoInventario{
		TipoCombustible:   tipo,
		Tipo:              model.MovEgreso,
		Litros:            litros.Neg(),
		LitrosResultantes: nuevoNivel,
		AgendamientoID:    &aid,
		Observaciones:     &obs,
	}
	if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
		return decimal.Zero, err
	}
	return nuevoNivel, nil
}
