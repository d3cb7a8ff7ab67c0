package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/empresas-api/internal/application/dto"
	"github.com/jhoicas/empresas-api/internal/application/validation"
	"github.com/jhoicas/empresas-api/internal/domain"
	"github.com/jhoicas/empresas-api/internal/domain/entity"
	"github.com/jhoicas/empresas-api/internal/domain/repository"
)

// BcryptCost costo de hash de contraseñas.
const BcryptCost = 10

// dummyHash se compara cuando el usuario no existe, para que ambos caminos del login cuesten lo mismo.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("usuario-inexistente!"), BcryptCost)

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   *TokenIssuer
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens *TokenIssuer, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens, log: log, now: time.Now}
}

// Register crea un usuario sin empresa ni rol. Hashea la contraseña con bcrypt.
// Un nombre de usuario repetido devuelve AlreadyExists.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), BcryptCost)
	if err != nil {
		return nil, domain.Persistence("no se pudo procesar la contraseña", err)
	}
	user := &entity.User{
		Username:     in.NombreUsuario,
		FirstName:    in.Nombre,
		LastName:     in.Apellidos,
		PasswordHash: string(hash),
		Email:        in.Email,
		Phone:        in.Telefono,
		Active:       true,
		CreatedAt:    uc.now(),
	}
	id, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.AlreadyExists("el nombre de usuario ya está registrado")
		}
		uc.log.Error().Err(err).Str("username", in.NombreUsuario).Msg("registro fallido")
		return nil, domain.Persistence("no se pudo registrar el usuario", err)
	}
	return &dto.RegisterResponse{Message: "usuario registrado", ID: id}, nil
}

// Login verifica usuario y contraseña y emite un token con la membresía actual.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Persistence("no se pudo consultar el usuario", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrLogin
	}
	token, err := uc.tokens.Issue(entity.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		CompanyID: user.CompanyID,
		RoleID:    user.RoleID,
	})
	if err != nil {
		return nil, domain.Persistence("no se pudo emitir el token", err)
	}
	return &dto.LoginResponse{Name: user.FirstName, Username: user.Username, Token: token}, nil
}
