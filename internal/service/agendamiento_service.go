package service

import (
	"context"
	"errors"
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/dto"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fechaISO is the storage/display format for day-granularity dates.
const fechaISO = "2006-01-02"

type AgendamientoService interface {
	Agendar(ctx context.Context, req dto.AgendarRequest) (*dto.AgendarResponse, error)
	ListarPorDia(ctx context.Context, fecha string) ([]dto.AgendamientoDiaItem, error)
	ListarPorCliente(ctx context.Context, clienteID int64) ([]dto.AgendamientoDiaItem, error)
}

type agendamientoService struct {
	repo           repository.AgendamientoRepository
	clienteRepo    repository.ClienteRepository
	subclienteRepo repository.SubclienteRepository
	limiteRepo     repository.LimiteRepository
	ticketRepo     repository.TicketRepository
	inventarioRepo repository.InventarioRepository
	sistemaRepo    repository.SistemaRepository

	// Day-boundary policy: "hoy" and "mañana" are computed in the configured
	// timezone, never in host-machine local time.
	loc              *time.Location
	diasAnticipacion int
	now              func() time.Time
}

func NewAgendamientoService(
	repo repository.AgendamientoRepository,
	clienteRepo repository.ClienteRepository,
	subclienteRepo repository.SubclienteRepository,
	limiteRepo repository.LimiteRepository,
	ticketRepo repository.TicketRepository,
	inventarioRepo repository.InventarioRepository,
	sistemaRepo repository.SistemaRepository,
	loc *time.Location,
	diasAnticipacion int,
) AgendamientoService {
	if diasAnticipacion < 1 {
		diasAnticipacion = 1
	}
	return &agendamientoService{
		repo:             repo,
		clienteRepo:      clienteRepo,
		subclienteRepo:   subclienteRepo,
		limiteRepo:       limiteRepo,
		ticketRepo:       ticketRepo,
		inventarioRepo:   inventarioRepo,
		sistemaRepo:      sistemaRepo,
		loc:              loc,
		diasAnticipacion: diasAnticipacion,
		now:              time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Agendar ───────────────────────────────────────────────────────────────────
// One ACID transaction:
//   1. reject if the global block is active
//   2. resolve cliente/subcliente under a row lock, check balance
//   3. reserve daily cap for (mañana, tipo), locking the cap row
//   4. advisory inventory check (read-only; the real guard runs at processing)
//   5. debit the client ledger
//   6. issue the day-scoped ticket number
//   7. insert the agendamiento in estado pendiente
// Any step failing aborts the whole transaction.

func (s *agendamientoService) Agendar(ctx context.Context, req dto.AgendarRequest) (*dto.AgendarResponse, error) {
	if req.Litros.LessThanOrEqual(decimal.Zero) {
		return nil, ErrLitrosInvalidos
	}
	tipo := model.TipoCombustible(req.TipoCombustible)
	if !tipo.Valido() {
		return nil, ErrTipoCombustibleInvalido
	}

	ahora := s.now().In(s.loc)
	hoy := ahora.Format(fechaISO)
	fechaAgendada := ahora.AddDate(0, 0, s.diasAnticipacion).Format(fechaISO)

	var resp *dto.AgendarResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cfg, err := s.sistemaRepo.GetTx(tx)
		if err != nil {
			return err
		}
		if cfg.AgendamientosBloqueados {
			return ErrAgendamientosBloqueados
		}

		// Resolve the target entity and lock its balance row.
		saldo, err := s.resolverYBloquear(tx, req, tipo)
		if err != nil {
			return err
		}
		if saldo.LessThan(req.Litros) {
			return &SaldoInsuficienteError{Disponible: saldo}
		}

		// Reserve against the daily cap. Usage is always tracked; the cap is
		// only enforced when one is configured for the fuel type.
		lim, err := s.limiteRepo.FindForUpdateTx(tx, fechaAgendada, tipo)
		if err != nil {
			return err
		}
		if limite, enforced := cfg.LimitePara(tipo); enforced {
			disponible := limite.Sub(lim.LitrosAgendados)
			if req.Litros.GreaterThan(disponible) {
				return &LimiteExcedidoError{
					Limite:     limite,
					Agendado:   lim.LitrosAgendados,
					Disponible: decimal.Max(disponible, decimal.Zero),
				}
			}
		}
		if err := s.limiteRepo.AjustarTx(tx, fechaAgendada, tipo, req.Litros, decimal.Zero); err != nil {
			return err
		}

		// Advisory inventory check. Scheduling does not reserve liters; the
		// enforced debit happens at processing time.
		inv, err := s.inventarioRepo.Nivel(ctx, tipo)
		if err != nil {
			return err
		}
		if inv.LitrosDisponibles.LessThanOrEqual(decimal.Zero) {
			return ErrInventarioAgotado
		}

		if err := s.debitar(tx, req, tipo); err != nil {
			return err
		}

		ticket, err := s.ticketRepo.NextTicketTx(tx, hoy)
		if err != nil {
			return err
		}

		a := &model.Agendamiento{
			ClienteID:       req.ClienteID,
			SubclienteID:    req.SubclienteID,
			TipoCombustible: tipo,
			Litros:          req.Litros,
			FechaAgendada:   fechaAgendada,
			CodigoTicket:    ticket,
			Estado:          model.EstadoPendiente,
		}
		if err := s.repo.CreateTx(tx, a); err != nil {
			return err
		}

		resp = &dto.AgendarResponse{
			ID:                 a.ID,
			CodigoTicket:       ticket,
			Ticket:             dto.FormatTicket(ticket),
			FechaAgendada:      fechaAgendada,
			TipoCombustible:    string(tipo),
			Litros:             req.Litros,
			InventarioRestante: inv.LitrosDisponibles,
			SaldoRestante:      saldo.Sub(req.Litros),
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

// resolverYBloquear locks the cliente (or subcliente) row and returns the
// balance for the requested fuel type.
func (s *agendamientoService) resolverYBloquear(tx *gorm.DB, req dto.AgendarRequest, tipo model.TipoCombustible) (decimal.Decimal, error) {
	if req.SubclienteID != nil {
		sub, err := s.subclienteRepo.FindForUpdateTx(tx, *req.SubclienteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.Zero, ErrSubclienteNoEncontrado
			}
			return decimal.Zero, err
		}
		if !sub.Activo || sub.ClienteID != req.ClienteID {
			return decimal.Zero, ErrSubclienteNoEncontrado
		}
		return sub.Saldo(tipo), nil
	}

	cliente, err := s.clienteRepo.FindForUpdateTx(tx, req.ClienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrClienteNoEncontrado
		}
		return decimal.Zero, err
	}
	if !cliente.Activo {
		return decimal.Zero, ErrClienteNoEncontrado
	}
	return cliente.Saldo(tipo), nil
}

func (s *agendamientoService) debitar(tx *gorm.DB, req dto.AgendarRequest, tipo model.TipoCombustible) error {
	if req.SubclienteID != nil {
		return s.subclienteRepo.AjustarSaldoTx(tx, *req.SubclienteID, tipo, req.Litros.Neg())
	}
	return s.clienteRepo.AjustarSaldoTx(tx, req.ClienteID, tipo, req.Litros.Neg())
}

// ── Listados ──────────────────────────────────────────────────────────────────

func (s *agendamientoService) ListarPorDia(ctx context.Context, fecha string) ([]dto.AgendamientoDiaItem, error) {
	if _, err := time.Parse(fechaISO, fecha); err != nil {
		return nil, ErrFechaInvalida
	}
	ags, err := s.repo.ListByDia(ctx, fecha)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AgendamientoDiaItem, 0, len(ags))
	for i := range ags {
		items = append(items, agendamientoToItem(&ags[i]))
	}
	return items, nil
}

func (s *agendamientoService) ListarPorCliente(ctx context.Context, clienteID int64) ([]dto.AgendamientoDiaItem, error) {
	ags, err := s.repo.ListByCliente(ctx, clienteID, 50)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AgendamientoDiaItem, 0, len(ags))
	for i := range ags {
		items = append(items, agendamientoToItem(&ags[i]))
	}
	return items, nil
}

func agendamientoToItem(a *model.Agendamiento) dto.AgendamientoDiaItem {
	item := dto.AgendamientoDiaItem{
		ID:              a.ID,
		ClienteID:       a.ClienteID,
		SubclienteID:    a.SubclienteID,
		TipoCombustible: string(a.TipoCombustible),
		Litros:          a.Litros,
		FechaAgendada:   a.FechaAgendada,
		CodigoTicket:    a.CodigoTicket,
		Estado:          a.Estado,
		FechaCreacion:   a.CreatedAt.Format(time.RFC3339),
	}
	if a.Cliente != nil {
		item.ClienteNombre = a.Cliente.Nombre
		item.Cedula = a.Cliente.Cedula
		item.Telefono = a.Cliente.Telefono
		item.Placa = a.Cliente.Placa
	}
	if a.Subcliente != nil {
		item.SubclienteNombre = &a.Subcliente.Nombre
		item.SubclienteCedula = &a.Subcliente.Cedula
		if a.Subcliente.Placa != nil {
			item.Placa = a.Subcliente.Placa
		}
	}
	return item
}
