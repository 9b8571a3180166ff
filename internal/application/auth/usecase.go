package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cafe-stock/internal/domain"
	"github.com/jhoicas/cafe-stock/internal/domain/entity"
	"github.com/jhoicas/cafe-stock/internal/domain/repository"
	"github.com/jhoicas/cafe-stock/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// SessionConfig configuración para emisión de tokens de sesión.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Hash bcrypt de relleno: cuando el usuario no existe se compara igual contra
// este hash para que ambas fallas de login cuesten lo mismo y devuelvan el
// mismo error, sin filtrar qué parte falló.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthUseCase casos de uso de autenticación: login, autorización por token y logout.
// El motor de inventario nunca ve contraseñas; solo consume el UserID ya autorizado.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions SessionStore
	cfg      SessionConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions SessionStore, cfg SessionConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, cfg: cfg}
}

// Login verifica nombre/password, crea la sesión y devuelve el token firmado.
// Usuario inexistente y password incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, name, password string) (string, error) {
	user, err := uc.userRepo.GetByName(name)
	if err != nil {
		return "", err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.TTL),
	}
	if err := uc.sessions.Put(ctx, session); err != nil {
		return "", err
	}
	return token.Generate(uc.cfg.Secret, session.ID, user.ID, uc.cfg.Issuer, uc.cfg.TTL)
}

// Authorize resuelve un token a un UserID. Falla con ErrUnauthenticated cuando
// el token falta, tiene firma inválida, la sesión no existe o ya expiró.
func (uc *AuthUseCase) Authorize(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", domain.ErrUnauthenticated
	}
	sessionID, userID, err := token.Parse(uc.cfg.Secret, tokenString)
	if err != nil {
		return "", domain.ErrUnauthenticated
	}
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil || session.UserID != userID {
		return "", domain.ErrUnauthenticated
	}
	if session.Expired(time.Now()) {
		_ = uc.sessions.Delete(ctx, session.ID)
		return "", domain.ErrUnauthenticated
	}
	return session.UserID, nil
}

// Logout destruye la sesión del token. Idempotente: un token ya inválido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) {
	sessionID, _, err := token.Parse(uc.cfg.Secret, tokenString)
	if err != nil {
		return
	}
	_ = uc.sessions.Delete(ctx, sessionID)
}
