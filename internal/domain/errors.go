package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio. Cada Kind tiene un único código HTTP asociado
// (ver interfaces/http/errors.go).
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAlreadyExists
	KindNotFound
	KindUnauthorized
	KindLogin
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindLogin:
		return "LOGIN_ERROR"
	case KindPersistence:
		return "PERSISTENCE"
	default:
		return "UNKNOWN"
	}
}

// Error es el error de dominio. Fields solo se usa en validaciones (campo -> mensaje).
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind, así errors.Is(err, domain.ErrNotFound) funciona con cualquier mensaje.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation    = &Error{Kind: KindValidation, Code: "VALIDATION", Message: "entrada inválida"}
	ErrAlreadyExists = &Error{Kind: KindAlreadyExists, Code: "ALREADY_EXISTS", Message: "el recurso ya existe"}
	ErrNotFound      = &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: "recurso no encontrado"}
	ErrUnauthorized  = &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: "no autorizado"}
	ErrLogin         = &Error{Kind: KindLogin, Code: "LOGIN_ERROR", Message: "usuario o contraseña inválidos"}
	ErrPersistence   = &Error{Kind: KindPersistence, Code: "PERSISTENCE", Message: "error de persistencia"}
)

// Validation construye un error de validación con el detalle por campo.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION", Message: message, Fields: fields}
}

// AlreadyExists construye un error de conflicto/unicidad.
func AlreadyExists(message string) *Error {
	return &Error{Kind: KindAlreadyExists, Code: "ALREADY_EXISTS", Message: message}
}

// NotFound construye un error de recurso inexistente (o cero filas afectadas).
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: message}
}

// Unauthorized construye un error de autorización. code distingue token ausente de permiso insuficiente.
func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

// Persistence envuelve un error del almacén. Si err ya es un *Error de dominio se devuelve tal cual.
func Persistence(message string, err error) error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Kind: KindPersistence, Code: "PERSISTENCE", Message: message, Err: err}
}

// KindOf devuelve el Kind de err, o 0 si no es un error de dominio.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
