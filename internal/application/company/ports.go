package company

import (
	"context"

	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo lo ejecutado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// TokenIssuer emite un token nuevo para la identidad (lo implementa auth.TokenIssuer).
type TokenIssuer interface {
	Issue(id entity.Identity) (string, error)
}
