package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrSchema          = errors.New("faltan columnas requeridas")
	ErrUnknownVariant  = errors.New("variante de rebalanceo desconocida")
	ErrUnreadableInput = errors.New("archivo de entrada ilegible")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
)

// SchemaError indica que el dataset no trae una o más columnas obligatorias.
// Es el único error fatal del cargador: aborta la corrida.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchema.Error(), strings.Join(e.Missing, ", "))
}

// Unwrap permite errors.Is(err, ErrSchema).
func (e *SchemaError) Unwrap() error { return ErrSchema }
