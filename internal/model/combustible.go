package model

// TipoCombustible enumerates the fuel types the plant dispenses.
type TipoCombustible string

const (
	Gasolina TipoCombustible = "gasolina"
	Gasoil   TipoCombustible = "gasoil"
)

// Valido reports whether t is one of the known fuel types.
func (t TipoCombustible) Valido() bool {
	return t == Gasolina || t == Gasoil
}

// Tipos lists every fuel type (used to seed inventory rows and build summaries).
func Tipos() []TipoCombustible {
	return []TipoCombustible{Gasolina, Gasoil}
}
