// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "github.com/shopspring/decimal"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// LimiteExcedido carries the numeric context a rejected scheduling request
// needs so the UI can explain the rejection without a follow-up query.
type LimiteExcedido struct {
	Detail     string          `json:"detail"`
	Limite     decimal.Decimal `json:"limite"`
	Agendado   decimal.Decimal `json:"agendado"`
	Disponible decimal.Decimal `json:"disponible"`
}

func NewLimiteExcedido(limite, agendado, disponible decimal.Decimal) *LimiteExcedido {
	return &LimiteExcedido{
		Detail:     "Límite diario de agendamiento excedido",
		Limite:     limite,
		Agendado:   agendado,
		Disponible: disponible,
	}
}

// SaldoInsuficiente reports the client's remaining balance alongside the rejection.
type SaldoInsuficiente struct {
	Detail     string          `json:"detail"`
	Disponible decimal.Decimal `json:"disponible"`
}

func NewSaldoInsuficiente(disponible decimal.Decimal) *SaldoInsuficiente {
	return &SaldoInsuficiente{
		Detail:     "No hay suficientes litros disponibles",
		Disponible: disponible,
	}
}
