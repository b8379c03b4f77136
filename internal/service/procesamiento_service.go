package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertNotifier publishes operator alerts for asynchronous delivery.
// The worker pool consumes them off Redis; a nil notifier disables alerts.
type AlertNotifier interface {
	NotificarAlerta(ctx context.Context, asunto, cuerpo string) error
}

// ProcesamientoService drives the lifecycle of an existing agendamiento:
// pendiente -> procesado (fuel dispensed), pendiente -> entregado,
// pendiente -> cancelado (reservation released).
type ProcesamientoService interface {
	Procesar(ctx context.Context, id int64) (*dto.ProcesarResponse, error)
	Entregar(ctx context.Context, id int64) error
	Cancelar(ctx context.Context, id int64) error
}

type procesamientoService struct {
	agendamientoRepo repository.AgendamientoRepository
	clienteRepo      repository.ClienteRepository
	subclienteRepo   repository.SubclienteRepository
	limiteRepo       repository.LimiteRepository
	inventarioSvc    InventarioService
	alertas          AlertNotifier
}

func NewProcesamientoService(
	agendamientoRepo repository.AgendamientoRepository,
	clienteRepo repository.ClienteRepository,
	subclienteRepo repository.SubclienteRepository,
	limiteRepo repository.LimiteRepository,
	inventarioSvc InventarioService,
	alertas AlertNotifier,
) ProcesamientoService {
	return &procesamientoService{
		agendamientoRepo: agendamientoRepo,
		clienteRepo:      clienteRepo,
		subclienteRepo:   subclienteRepo,
		limiteRepo:       limiteRepo,
		inventarioSvc:    inventarioSvc,
		alertas:          alertas,
	}
}

// Procesar marks an agendamiento as dispensed. Calling it again for an
// already processed ticket is a no-op success, so an operator double-tap
// never debits inventory twice.
func (s *procesamientoService) Procesar(ctx context.Context, id int64) (*dto.ProcesarResponse, error) {
	var resp dto.ProcesarResponse

	txErr := runTx(ctx, s.agendamientoRepo.DB(), func(tx *gorm.DB) error {
		a, err := s.agendamientoRepo.FindForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if a.Estado == model.EstadoProcesado {
			resp = dto.ProcesarResponse{CodigoTicket: a.CodigoTicket}
			return nil
		}
		if a.Estado != model.EstadoPendiente {
			return &EstadoInvalidoError{Actual: a.Estado}
		}

		nivel, err := s.inventarioSvc.DebitarTx(tx, a.TipoCombustible, a.Litros, a.ID)
		if err != nil {
			return err
		}
		if err := s.limiteRepo.AjustarTx(tx, a.FechaAgendada, a.TipoCombustible, decimal.Zero, a.Litros); err != nil {
			return err
		}
		rows, err := s.agendamientoRepo.UpdateEstadoCondTx(tx, a.ID, model.EstadoPendiente, model.EstadoProcesado)
		if err != nil {
			return err
		}
		if rows == 0 {
			return &EstadoInvalidoError{Actual: a.Estado}
		}
		resp = dto.ProcesarResponse{CodigoTicket: a.CodigoTicket, InventarioRestante: nivel}
		return nil
	})
	if txErr != nil {
		var insuf *InventarioInsuficienteError
		if errors.As(txErr, &insuf) {
			s.alertarInventario(ctx, id, insuf)
		}
		return nil, txErr
	}
	return &resp, nil
}

// Entregar confirms the client picked up the fuel without going through the
// pump flow. Only pending tickets can be delivered.
func (s *procesamientoService) Entregar(ctx context.Context, id int64) error {
	return runTx(ctx, s.agendamientoRepo.DB(), func(tx *gorm.DB) error {
		a, err := s.agendamientoRepo.FindForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if a.Estado != model.EstadoPendiente {
			return &EstadoInvalidoError{Actual: a.Estado}
		}
		rows, err := s.agendamientoRepo.UpdateEstadoCondTx(tx, a.ID, model.EstadoPendiente, model.EstadoEntregado)
		if err != nil {
			return err
		}
		if rows == 0 {
			return &EstadoInvalidoError{Actual: a.Estado}
		}
		return nil
	})
}

// Cancelar releases everything the reservation held: the client gets the
// liters back on their balance and the day's scheduled usage shrinks, so
// the freed capacity is immediately available to other clients.
func (s *procesamientoService) Cancelar(ctx context.Context, id int64) error {
	return runTx(ctx, s.agendamientoRepo.DB(), func(tx *gorm.DB) error {
		a, err := s.agendamientoRepo.FindForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrado
			}
			return err
		}
		if a.Estado != model.EstadoPendiente {
			return &EstadoInvalidoError{Actual: a.Estado}
		}
		rows, err := s.agendamientoRepo.UpdateEstadoCondTx(tx, a.ID, model.EstadoPendiente, model.EstadoCancelado)
		if err != nil {
			return err
		}
		if rows == 0 {
			return &EstadoInvalidoError{Actual: a.Estado}
		}

		if a.SubclienteID != nil {
			if err := s.subclienteRepo.AjustarSaldoTx(tx, *a.SubclienteID, a.TipoCombustible, a.Litros); err != nil {
				return err
			}
		} else {
			if err := s.clienteRepo.AjustarSaldoTx(tx, a.ClienteID, a.TipoCombustible, a.Litros); err != nil {
				return err
			}
		}
		return s.limiteRepo.AjustarTx(tx, a.FechaAgendada, a.TipoCombustible, a.Litros.Neg(), decimal.Zero)
	})
}

// alertarInventario notifies the operator that a ticket could not be served
// because the tank ran dry between scheduling and processing. Best effort:
// a failed enqueue is logged, never surfaced to the caller.
func (s *procesamientoService) alertarInventario(ctx context.Context, id int64, insuf *InventarioInsuficienteError) {
	if s.alertas == nil {
		return
	}
	asunto := fmt.Sprintf("Inventario insuficiente para agendamiento #%d", id)
	cuerpo := fmt.Sprintf(
		"El agendamiento #%d no pudo procesarse el %s.\n\nLitros requeridos: %s\nLitros disponibles: %s\n\nSe requiere ingreso de combustible o cancelación manual del ticket.",
		id, time.Now().Format("02/01/2006 15:04"), insuf.Requerido.String(), insuf.Disponible.String(),
	)
	if err := s.alertas.NotificarAlerta(ctx, asunto, cuerpo); err != nil {
		log.Error().Err(err).Int64("agendamiento_id", id).Msg("No se pudo encolar alerta de inventario")
	}
}
