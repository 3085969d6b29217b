package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrRejected              = errors.New("operación rechazada")
	ErrStoreUnavailable      = errors.New("almacenamiento no disponible")
)

// RejectedError indica que una operación compuesta (venta, compra) fue rechazada
// sin persistir nada. Envuelve la causa para que el caller pueda distinguirla
// con errors.Is (ErrInsufficientStock, ErrNotFound, ...).
type RejectedError struct {
	Op    string // operación rechazada: "venta", "compra"
	Cause error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rechazada: %v", e.Op, e.Cause)
}

// Unwrap permite que errors.Is resuelva tanto ErrRejected como la causa.
func (e *RejectedError) Unwrap() []error {
	return []error{ErrRejected, e.Cause}
}

// Reject construye un RejectedError para la operación indicada.
func Reject(op string, cause error) error {
	return &RejectedError{Op: op, Cause: cause}
}
