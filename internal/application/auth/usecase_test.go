package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cafe-stock/internal/application/auth"
	"github.com/jhoicas/cafe-stock/internal/domain"
	"github.com/jhoicas/cafe-stock/internal/domain/entity"
	"github.com/jhoicas/cafe-stock/internal/infrastructure/session"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "cafe-stock-test"
	testPassword = "admin123"
)

// fakeUserRepo repo de usuarios en memoria, indexado por nombre.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.Name] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByName(name string) (*entity.User, error) {
	return r.users[name], nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

// newAuthUC construye el caso de uso con un usuario "admin" y store en memoria.
func newAuthUC(t *testing.T, ttl time.Duration) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]*entity.User{
		"admin": {ID: "u-1", Name: "admin", PasswordHash: string(hash), CreatedAt: time.Now()},
	}}
	store := session.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)

	return auth.NewAuthUseCase(repo, store, auth.SessionConfig{
		Secret: testSecret,
		TTL:    ttl,
		Issuer: testIssuer,
	})
}

func TestLogin_Exitoso_TokenAutoriza(t *testing.T) {
	uc := newAuthUC(t, time.Hour)
	ctx := context.Background()

	tok, err := uc.Login(ctx, "admin", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := uc.Authorize(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

// Usuario inexistente y password incorrecta deben fallar con el MISMO error,
// sin señal que distinga cuál de las dos partes falló.
func TestLogin_FallasIndistinguibles(t *testing.T) {
	uc := newAuthUC(t, time.Hour)
	ctx := context.Background()

	_, errWrongPassword := uc.Login(ctx, "admin", "password-incorrecta")
	_, errUnknownUser := uc.Login(ctx, "fantasma", testPassword)

	require.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword, errUnknownUser,
		"ambas fallas deben devolver exactamente el mismo error")
}

func TestAuthorize_TokenNuncaEmitido(t *testing.T) {
	uc := newAuthUC(t, time.Hour)

	for _, tok := range []string{"", "token.invalido.aqui", "x"} {
		_, err := uc.Authorize(context.Background(), tok)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, "token %q", tok)
	}
}

func TestAuthorize_DespuesDeLogout(t *testing.T) {
	uc := newAuthUC(t, time.Hour)
	ctx := context.Background()

	tok, err := uc.Login(ctx, "admin", testPassword)
	require.NoError(t, err)

	uc.Logout(ctx, tok)

	_, err = uc.Authorize(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated,
		"un token invalidado no debe autorizar aunque su firma siga siendo válida")
}

func TestLogout_Idempotente(t *testing.T) {
	uc := newAuthUC(t, time.Hour)
	ctx := context.Background()

	tok, err := uc.Login(ctx, "admin", testPassword)
	require.NoError(t, err)

	// Repetir logout (y con tokens basura) no debe entrar en pánico ni fallar
	uc.Logout(ctx, tok)
	uc.Logout(ctx, tok)
	uc.Logout(ctx, "token.invalido.aqui")
	uc.Logout(ctx, "")
}

func TestAuthorize_SesionExpirada(t *testing.T) {
	uc := newAuthUC(t, 10*time.Millisecond)
	ctx := context.Background()

	tok, err := uc.Login(ctx, "admin", testPassword)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = uc.Authorize(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthorize_TokenFirmadoConOtroSecret(t *testing.T) {
	uc := newAuthUC(t, time.Hour)
	ctx := context.Background()

	tok, err := uc.Login(ctx, "admin", testPassword)
	require.NoError(t, err)

	// Instancia con otro secret: la firma del token no verifica
	store := session.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)
	otherUC := auth.NewAuthUseCase(&fakeUserRepo{users: map[string]*entity.User{}}, store, auth.SessionConfig{
		Secret: "otro-secret-completamente-distinto",
		TTL:    time.Hour,
		Issuer: testIssuer,
	})

	_, err = otherUC.Authorize(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
