package postgres

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/empresas-api/internal/domain"
)

// psql constructor de sentencias con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// translate convierte las violaciones de restricciones en errores de dominio y envuelve el resto con op.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &domain.Error{Kind: domain.KindAlreadyExists, Code: "ALREADY_EXISTS", Message: "el recurso ya existe", Err: err}
		case codeForeignKeyViolation:
			return &domain.Error{Kind: domain.KindValidation, Code: "VALIDATION", Message: "referencia inválida: " + pgErr.ConstraintName, Err: err}
		case codeCheckViolation:
			return &domain.Error{Kind: domain.KindValidation, Code: "VALIDATION", Message: "restricción incumplida: " + pgErr.ConstraintName, Err: err}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma el patrón ILIKE de "contiene s", escapando los comodines del usuario.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func translateSupplierInUse(err error) error {
	return &domain.Error{
		Kind:    domain.KindValidation,
		Code:    "VALIDATION",
		Message: "proveedor en uso",
		Fields:  map[string]string{"proveedor_id": "hay productos que usan este proveedor"},
		Err:     err,
	}
}
