package auth

import (
	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenIssuer emite tokens firmados a partir de una Identity.
type TokenIssuer struct {
	cfg JWTConfig
}

// NewTokenIssuer construye el emisor.
func NewTokenIssuer(cfg JWTConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue firma un token nuevo con los datos de id. Los tokens anteriores no cambian.
func (t *TokenIssuer) Issue(id entity.Identity) (string, error) {
	return jwt.Generate(t.cfg.Secret, t.cfg.Issuer, t.cfg.ExpMinutes, jwt.Payload{
		UserID:    id.UserID,
		Username:  id.Username,
		CompanyID: id.CompanyID,
		RoleID:    id.RoleID,
	})
}

// Verify valida el token y devuelve la identidad que transporta.
func (t *TokenIssuer) Verify(token string) (entity.Identity, error) {
	claims, err := jwt.Parse(t.cfg.Secret, token)
	if err != nil {
		return entity.Identity{}, err
	}
	p := claims.Payload()
	return entity.Identity{UserID: p.UserID, Username: p.Username, CompanyID: p.CompanyID, RoleID: p.RoleID}, nil
}
