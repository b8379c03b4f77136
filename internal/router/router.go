package router

import (
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/config"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/handler"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/middleware"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/repository"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/service"
	"github.com/Edmartinezzz/insulaguaira-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, loc *time.Location) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	subclienteRepo := repository.NewSubclienteRepository(db)
	agendamientoRepo := repository.NewAgendamientoRepository(db)
	limiteRepo := repository.NewLimiteRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	sistemaRepo := repository.NewSistemaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, clienteRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, subclienteRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo)
	sistemaSvc := service.NewSistemaService(sistemaRepo, limiteRepo, clienteRepo, agendamientoRepo, inventarioRepo, rdb, loc)
	agendamientoSvc := service.NewAgendamientoService(
		agendamientoRepo, clienteRepo, subclienteRepo, limiteRepo,
		ticketRepo, inventarioRepo, sistemaRepo, loc, cfg.DiasAnticipacion,
	)

	// Worker dispatcher, injected into services that enqueue async jobs
	var alertas service.AlertNotifier
	if rdb != nil {
		alertas = worker.NewDispatcher(rdb)
	}
	procesamientoSvc := service.NewProcesamientoService(
		agendamientoRepo, clienteRepo, subclienteRepo, limiteRepo, inventarioSvc, alertas,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	agendamientosH := handler.NewAgendamientosHandler(agendamientoSvc, procesamientoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	sistemaH := handler.NewSistemaHandler(sistemaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")

	// Auth (public, rate limited)
	api.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)
	api.POST("/clientes/login", middleware.LoginRateLimiter(), authH.LoginCliente)

	// Kiosk endpoints: the scheduling flow itself needs no operator token.
	api.POST("/agendamientos", middleware.AgendarRateLimiter(), agendamientosH.Agendar)
	api.GET("/sistema/limites", sistemaH.Limites)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	operador := middleware.RequireTipo(service.TipoTokenOperador)

	auth := api.Group("", jwtMW)
	{
		// A logged-in beneficiary may consult their own history; operators too.
		auth.GET("/agendamientos/cliente/:id", agendamientosH.ListarPorCliente)

		op := auth.Group("", operador)
		{
			op.GET("/agendamientos/dia/:fecha", agendamientosH.ListarPorDia)
			op.POST("/agendamientos/:id/procesar", agendamientosH.Procesar)
			op.PATCH("/agendamientos/:id/entregar", agendamientosH.Entregar)
			op.DELETE("/agendamientos/:id", agendamientosH.Cancelar)

			op.POST("/clientes", clientesH.Crear)
			op.GET("/clientes", clientesH.Listar)
			op.GET("/clientes/:id", clientesH.Obtener)
			op.GET("/clientes/cedula/:cedula", clientesH.ObtenerPorCedula)
			op.PUT("/clientes/:id", clientesH.Actualizar)
			op.DELETE("/clientes/:id", clientesH.Desactivar)
			op.PATCH("/clientes/:id/reactivar", clientesH.Reactivar)
			op.POST("/clientes/:id/subclientes", clientesH.CrearSubcliente)
			op.GET("/clientes/:id/subclientes", clientesH.ListarSubclientes)

			op.GET("/inventario", inventarioH.Niveles)
			op.POST("/inventario", inventarioH.Ingresar)
			op.GET("/inventario/historial", inventarioH.Historial)

			op.GET("/estadisticas", sistemaH.Estadisticas)
		}

		// Destructive / policy operations need the admin flag.
		admin := auth.Group("", middleware.RequireAdmin())
		{
			admin.POST("/clientes/reset-saldos", clientesH.ResetSaldos)
			admin.POST("/inventario/reset", inventarioH.Reset)
			admin.PUT("/sistema/limite-diario", sistemaH.ActualizarLimite)
			admin.POST("/sistema/bloqueo", sistemaH.Bloqueo)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
