package infra

import (
	"fmt"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and applies the
// idempotent schema patches. GORM AutoMigrate is intentionally not used:
// decimal precision, composite unique indexes and the singleton seed rows
// need precise DDL that AutoMigrate cannot express reliably.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}
	if err := seedConfigInicial(db, cfg); err != nil {
		return nil, fmt.Errorf("seed config: %w", err)
	}
	return db, nil
}

// seedConfigInicial writes the configured daily caps into sistema_config on
// first boot only: once the row exists, operators manage caps through the API
// and env values are ignored.
func seedConfigInicial(db *gorm.DB, cfg *config.Config) error {
	if cfg.LimiteGasoil > 0 {
		return db.Exec(
			`INSERT INTO sistema_config (id, limite_diario_gasolina, limite_diario_gasoil)
			 VALUES (1, ?, ?) ON CONFLICT (id) DO NOTHING`,
			cfg.LimiteGasolina, cfg.LimiteGasoil,
		).Error
	}
	return db.Exec(
		`INSERT INTO sistema_config (id, limite_diario_gasolina)
		 VALUES (1, ?) ON CONFLICT (id) DO NOTHING`,
		cfg.LimiteGasolina,
	).Error
}

// applySchemaPatches creates the schema and seeds the singleton rows. Every
// statement uses IF NOT EXISTS / ON CONFLICT DO NOTHING semantics so re-running
// on an already-deployed database is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"create usuarios", `
CREATE TABLE IF NOT EXISTS usuarios (
    id          BIGSERIAL PRIMARY KEY,
    usuario     VARCHAR(50)  NOT NULL UNIQUE,
    contrasena  VARCHAR(100) NOT NULL,
    nombre      VARCHAR(100) NOT NULL,
    es_admin    BOOLEAN      NOT NULL DEFAULT FALSE,
    activo      BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`},
		{"create clientes", `
CREATE TABLE IF NOT EXISTS clientes (
    id                          BIGSERIAL PRIMARY KEY,
    nombre                      VARCHAR(150) NOT NULL,
    cedula                      VARCHAR(8)   NOT NULL UNIQUE,
    telefono                    VARCHAR(20)  NOT NULL UNIQUE,
    direccion                   TEXT,
    placa                       VARCHAR(20),
    categoria                   VARCHAR(30)  NOT NULL DEFAULT 'Persona Natural',
    cupo_mensual_gasolina       DECIMAL(10,2) NOT NULL DEFAULT 0,
    cupo_mensual_gasoil         DECIMAL(10,2) NOT NULL DEFAULT 0,
    litros_disponibles_gasolina DECIMAL(10,2) NOT NULL DEFAULT 0,
    litros_disponibles_gasoil   DECIMAL(10,2) NOT NULL DEFAULT 0,
    activo                      BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at                  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    updated_at                  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`},
		{"create subclientes", `
CREATE TABLE IF NOT EXISTS subclientes (
    id                          BIGSERIAL PRIMARY KEY,
    cliente_id                  BIGINT       NOT NULL REFERENCES clientes(id),
    nombre                      VARCHAR(150) NOT NULL,
    cedula                      VARCHAR(8)   NOT NULL UNIQUE,
    placa                       VARCHAR(20),
    cupo_mensual_gasolina       DECIMAL(10,2) NOT NULL DEFAULT 0,
    cupo_mensual_gasoil         DECIMAL(10,2) NOT NULL DEFAULT 0,
    litros_disponibles_gasolina DECIMAL(10,2) NOT NULL DEFAULT 0,
    litros_disponibles_gasoil   DECIMAL(10,2) NOT NULL DEFAULT 0,
    activo                      BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at                  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    updated_at                  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`},
		{"index subclientes cliente", `
CREATE INDEX IF NOT EXISTS idx_subclientes_cliente ON subclientes (cliente_id)`},
		{"create agendamientos", `
CREATE TABLE IF NOT EXISTS agendamientos (
    id               BIGSERIAL PRIMARY KEY,
    cliente_id       BIGINT        NOT NULL REFERENCES clientes(id),
    subcliente_id    BIGINT        REFERENCES subclientes(id),
    tipo_combustible VARCHAR(10)   NOT NULL,
    litros           DECIMAL(10,2) NOT NULL,
    fecha_agendada   VARCHAR(10)   NOT NULL,
    codigo_ticket    INT           NOT NULL,
    estado           VARCHAR(20)   NOT NULL DEFAULT 'pendiente',
    created_at       TIMESTAMPTZ   NOT NULL DEFAULT NOW()
)`},
		{"unique ticket per day", `
CREATE UNIQUE INDEX IF NOT EXISTS idx_agendamientos_fecha_ticket
    ON agendamientos (fecha_agendada, codigo_ticket)`},
		{"index agendamientos cliente", `
CREATE INDEX IF NOT EXISTS idx_agendamientos_cliente ON agendamientos (cliente_id)`},
		{"index agendamientos estado", `
CREATE INDEX IF NOT EXISTS idx_agendamientos_estado ON agendamientos (estado)`},
		{"create inventario_combustible", `
CREATE TABLE IF NOT EXISTS inventario_combustible (
    id                 BIGSERIAL PRIMARY KEY,
    tipo_combustible   VARCHAR(10)   NOT NULL UNIQUE,
    litros_disponibles DECIMAL(12,2) NOT NULL DEFAULT 0,
    updated_at         TIMESTAMPTZ   NOT NULL DEFAULT NOW()
)`},
		{"create movimientos_inventario", `
CREATE TABLE IF NOT EXISTS movimientos_inventario (
    id                 BIGSERIAL PRIMARY KEY,
    tipo_combustible   VARCHAR(10)   NOT NULL,
    tipo               VARCHAR(20)   NOT NULL,
    litros             DECIMAL(12,2) NOT NULL,
    litros_resultantes DECIMAL(12,2) NOT NULL,
    usuario_id         BIGINT        REFERENCES usuarios(id),
    agendamiento_id    BIGINT        REFERENCES agendamientos(id),
    observaciones      TEXT,
    created_at         TIMESTAMPTZ   NOT NULL DEFAULT NOW()
)`},
		{"index movimientos tipo", `
CREATE INDEX IF NOT EXISTS idx_movimientos_tipo_combustible
    ON movimientos_inventario (tipo_combustible)`},
		{"index movimientos fecha", `
CREATE INDEX IF NOT EXISTS idx_movimientos_created_at
    ON movimientos_inventario (created_at)`},
		{"create limites_diarios", `
CREATE TABLE IF NOT EXISTS limites_diarios (
    id                BIGSERIAL PRIMARY KEY,
    fecha             VARCHAR(10)   NOT NULL,
    tipo_combustible  VARCHAR(10)   NOT NULL,
    litros_agendados  DECIMAL(12,2) NOT NULL DEFAULT 0,
    litros_procesados DECIMAL(12,2) NOT NULL DEFAULT 0,
    updated_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW()
)`},
		{"unique limites fecha tipo", `
CREATE UNIQUE INDEX IF NOT EXISTS idx_limites_fecha_tipo
    ON limites_diarios (fecha, tipo_combustible)`},
		{"create ticket_counter", `
CREATE TABLE IF NOT EXISTS ticket_counter (
    id                 BIGINT PRIMARY KEY,
    numero_actual      INT         NOT NULL DEFAULT 0,
    fecha_ultimo_reset VARCHAR(10) NOT NULL DEFAULT ''
)`},
		{"create sistema_config", `
CREATE TABLE IF NOT EXISTS sistema_config (
    id                       BIGINT PRIMARY KEY,
    agendamientos_bloqueados BOOLEAN       NOT NULL DEFAULT FALSE,
    limite_diario_gasolina   DECIMAL(12,2) NOT NULL DEFAULT 2000,
    limite_diario_gasoil     DECIMAL(12,2),
    updated_at               TIMESTAMPTZ   NOT NULL DEFAULT NOW()
)`},

		// Singleton and per-fuel seed rows. The application assumes these
		// exist; every locked read targets them by fixed key.
		{"seed ticket_counter", `
INSERT INTO ticket_counter (id, numero_actual, fecha_ultimo_reset)
VALUES (1, 0, '') ON CONFLICT (id) DO NOTHING`},
		{"seed inventario gasolina", `
INSERT INTO inventario_combustible (tipo_combustible, litros_disponibles)
VALUES ('gasolina', 0) ON CONFLICT (tipo_combustible) DO NOTHING`},
		{"seed inventario gasoil", `
INSERT INTO inventario_combustible (tipo_combustible, litros_disponibles)
VALUES ('gasoil', 0) ON CONFLICT (tipo_combustible) DO NOTHING`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}

// RunMigrations applies the schema patches for integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := applySchemaPatches(db); err != nil {
		return err
	}
	return db.Exec(`INSERT INTO sistema_config (id) VALUES (1) ON CONFLICT (id) DO NOTHING`).Error
}
