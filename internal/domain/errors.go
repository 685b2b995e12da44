package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrActiveOperation    = errors.New("el depósito ya tiene una operación en curso")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// OrphanedMovementError indica que la reversa de stock se aplicó pero el
// movimiento no pudo eliminarse: el saldo quedó corregido y el renglón del
// historial quedó huérfano. Requiere intervención manual, no reintento.
type OrphanedMovementError struct {
	MovementID string
	Err        error
}

func (e *OrphanedMovementError) Error() string {
	return fmt.Sprintf("stock revertido pero el movimiento %s no pudo eliminarse: %v", e.MovementID, e.Err)
}

func (e *OrphanedMovementError) Unwrap() error { return e.Err }
