package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Payload datos de identidad que viajan en el token. CompanyID y RoleID son nulos
// mientras el usuario no pertenece a una empresa.
type Payload struct {
	UserID    int64
	Username  string
	CompanyID *int64
	RoleID    *int64
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se incluye RoleID para que el middleware de roles decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"id"`
	Username  string `json:"username"`
	CompanyID *int64 `json:"companyId"`
	RoleID    *int64 `json:"roleId"`
}

// Payload devuelve los datos de identidad de los claims.
func (c *Claims) Payload() Payload {
	return Payload{UserID: c.UserID, Username: c.Username, CompanyID: c.CompanyID, RoleID: c.RoleID}
}

// Generate genera un token JWT firmado (HS256) con la identidad indicada.
// Un token emitido es inmutable: reflejar un cambio de empresa o rol exige emitir otro.
func Generate(secret, issuer string, expMinutes int, p Payload) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    p.UserID,
		Username:  p.Username,
		CompanyID: p.CompanyID,
		RoleID:    p.RoleID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o no trae id.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("token sin id de usuario")
	}
	return claims, nil
}
