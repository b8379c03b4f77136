package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	limitesCacheKey = "cache:sistema:limites"
	limitesCacheTTL = 30 * time.Second
)

// SistemaService exposes the operational knobs of the station: daily caps,
// the global scheduling switch and the dashboard aggregates.
type SistemaService interface {
	Limites(ctx context.Context) (*dto.LimitesResponse, error)
	ActualizarLimite(ctx context.Context, req dto.ActualizarLimiteRequest) error
	SetBloqueo(ctx context.Context, bloqueado bool) error
	Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error)
}

type sistemaService struct {
	sistemaRepo      repository.SistemaRepository
	limiteRepo       repository.LimiteRepository
	clienteRepo      repository.ClienteRepository
	agendamientoRepo repository.AgendamientoRepository
	inventarioRepo   repository.InventarioRepository
	rdb              *redis.Client
	loc              *time.Location
	now              func() time.Time
}

func NewSistemaService(
	sistemaRepo repository.SistemaRepository,
	limiteRepo repository.LimiteRepository,
	clienteRepo repository.ClienteRepository,
	agendamientoRepo repository.AgendamientoRepository,
	inventarioRepo repository.InventarioRepository,
	rdb *redis.Client,
	loc *time.Location,
) SistemaService {
	return &sistemaService{
		sistemaRepo:      sistemaRepo,
		limiteRepo:       limiteRepo,
		clienteRepo:      clienteRepo,
		agendamientoRepo: agendamientoRepo,
		inventarioRepo:   inventarioRepo,
		rdb:              rdb,
		loc:              loc,
		now:              time.Now,
	}
}

// Limites is the kiosk's polling endpoint, so it sits behind a short Redis
// cache. Staleness is bounded by the TTL; config changes invalidate eagerly.
func (s *sistemaService) Limites(ctx context.Context) (*dto.LimitesResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, limitesCacheKey).Result(); err == nil {
			var cached dto.LimitesResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.construirLimites(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, limitesCacheKey, raw, limitesCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("No se pudo cachear límites en Redis")
			}
		}
	}
	return resp, nil
}

func (s *sistemaService) construirLimites(ctx context.Context) (*dto.LimitesResponse, error) {
	cfg, err := s.sistemaRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	ahora := s.now().In(s.loc)
	hoy := ahora.Format(fechaISO)
	manana := ahora.AddDate(0, 0, 1).Format(fechaISO)

	resp := &dto.LimitesResponse{
		Bloqueado:    cfg.AgendamientosBloqueados,
		Combustibles: make(map[string]dto.LimitesCombustible, 2),
	}
	for _, tipo := range model.Tipos() {
		limite, enforced := cfg.LimitePara(tipo)

		usoHoy, err := s.usoDia(ctx, hoy, tipo, limite, enforced)
		if err != nil {
			return nil, err
		}
		usoManana, err := s.usoDia(ctx, manana, tipo, limite, enforced)
		if err != nil {
			return nil, err
		}

		lc := dto.LimitesCombustible{Hoy: usoHoy, Manana: usoManana}
		if enforced {
			l := limite
			lc.LimiteDiario = &l
		}
		resp.Combustibles[string(tipo)] = lc

		if tipo == model.Gasolina {
			resp.LimiteDiario = limite
			resp.Hoy = usoHoy
			resp.Manana = usoManana
		}
	}
	return resp, nil
}

func (s *sistemaService) usoDia(ctx context.Context, fecha string, tipo model.TipoCombustible, limite decimal.Decimal, enforced bool) (dto.UsoDia, error) {
	uso, err := s.limiteRepo.UsoDelDia(ctx, fecha, tipo)
	if err != nil {
		return dto.UsoDia{}, err
	}
	out := dto.UsoDia{
		Fecha:      fecha,
		Agendados:  uso.LitrosAgendados,
		Procesados: uso.LitrosProcesados,
	}
	if enforced {
		disponible := limite.Sub(uso.LitrosAgendados)
		if disponible.IsNegative() {
			disponible = decimal.Zero
		}
		out.Disponible = disponible
	}
	return out, nil
}

func (s *sistemaService) ActualizarLimite(ctx context.Context, req dto.ActualizarLimiteRequest) error {
	if req.Limite.IsNegative() {
		return ErrLitrosInvalidos
	}
	tipo := model.Gasolina
	if req.TipoCombustible != "" {
		tipo = model.TipoCombustible(req.TipoCombustible)
		if !tipo.Valido() {
			return ErrTipoCombustibleInvalido
		}
	}
	if err := s.sistemaRepo.SetLimite(ctx, tipo, req.Limite); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

func (s *sistemaService) SetBloqueo(ctx context.Context, bloqueado bool) error {
	if err := s.sistemaRepo.SetBloqueo(ctx, bloqueado); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

func (s *sistemaService) invalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, limitesCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("No se pudo invalidar cache de límites")
	}
}

func (s *sistemaService) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	ahora := s.now().In(s.loc)
	hoy := ahora.Format(fechaISO)
	inicioMes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, s.loc).Format(fechaISO)

	totalClientes, err := s.clienteRepo.CountActivos(ctx)
	if err != nil {
		return nil, err
	}
	agendamientosHoy, err := s.agendamientoRepo.CountByDia(ctx, hoy)
	if err != nil {
		return nil, err
	}

	procesadosHoy := decimal.Zero
	for _, tipo := range model.Tipos() {
		uso, err := s.limiteRepo.UsoDelDia(ctx, hoy, tipo)
		if err != nil {
			return nil, err
		}
		procesadosHoy = procesadosHoy.Add(uso.LitrosProcesados)
	}

	procesadosMes, err := s.agendamientoRepo.SumProcesadosDesde(ctx, inicioMes)
	if err != nil {
		return nil, err
	}

	resp := &dto.EstadisticasResponse{
		TotalClientes:       totalClientes,
		LitrosProcesadosHoy: procesadosHoy,
		LitrosProcesadosMes: procesadosMes,
		AgendamientosHoy:    agendamientosHoy,
	}
	niveles, err := s.inventarioRepo.Niveles(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range niveles {
		switch n.TipoCombustible {
		case model.Gasolina:
			resp.InventarioGasolina = n.LitrosDisponibles
		case model.Gasoil:
			resp.InventarioGasoil = n.LitrosDisponibles
		}
	}
	return resp, nil
}
