package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cafe-stock/internal/application/auth"
	"github.com/jhoicas/cafe-stock/internal/application/ledger"
	"github.com/jhoicas/cafe-stock/internal/domain/entity"
	"github.com/jhoicas/cafe-stock/internal/domain/repository"
	"github.com/jhoicas/cafe-stock/internal/infrastructure/session"
	apphttp "github.com/jhoicas/cafe-stock/internal/interfaces/http"
)

const (
	testCookieName = "cafe_session"
	testSecret     = "test-secret-key-for-unit-tests"
	testPassword   = "admin123"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mismo contrato que los repos PostgreSQL)
// ──────────────────────────────────────────────────────────────────────────────

type fakeDB struct {
	mu       sync.Mutex
	products map[int64]*entity.Product
	entries  []*entity.LedgerEntry
	nextID   int64
}

func (db *fakeDB) stock(id int64) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.products[id].Stock
}

func (db *fakeDB) entryCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.entries)
}

type fakeProductRepo struct{ db *fakeDB }

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}
func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) { return r.GetByID(id) }
func (r *fakeProductRepo) UpdateStock(id int64, stock int64) error {
	r.db.products[id].Stock = stock
	return nil
}
func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.db.products {
		copied := *p
		list = append(list, &copied)
	}
	return list, nil
}

type fakeLedgerRepo struct{ db *fakeDB }

func (r *fakeLedgerRepo) Create(e *entity.LedgerEntry) error {
	e.ID = r.db.nextID
	r.db.nextID++
	copied := *e
	r.db.entries = append(r.db.entries, &copied)
	return nil
}
func (r *fakeLedgerRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.LedgerEntry, error) {
	var list []*entity.LedgerEntry
	for _, e := range r.db.entries {
		if e.ProductID == productID {
			copied := *e
			list = append(list, &copied)
		}
	}
	return list, nil
}
func (r *fakeLedgerRepo) SumByProduct(productID int64) (int64, int64, error) { return 0, 0, nil }

type fakeTxRunner struct{ db *fakeDB }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return fn(&fakeProductRepo{db: r.db}, &fakeLedgerRepo{db: r.db})
}

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByName(name string) (*entity.User, error) { return r.users[name], nil }
func (r *fakeUserRepo) Count() (int64, error)                       { return int64(len(r.users)), nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestApp construye la aplicación completa con repos en memoria y el
// catálogo inicial: "Café en grano" con stock 10 y mínimo 3.
func newTestApp(t *testing.T) (*fiber.App, *fakeDB) {
	t.Helper()

	now := time.Now()
	db := &fakeDB{
		products: map[int64]*entity.Product{
			1: {ID: 1, Name: "Café en grano", Stock: 10, MinStock: 3, CreatedAt: now, UpdatedAt: now},
		},
		nextID: 1,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUserRepo{users: map[string]*entity.User{
		"admin": {ID: "u-1", Name: "admin", PasswordHash: string(hash), CreatedAt: now},
	}}

	store := session.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)

	authUC := auth.NewAuthUseCase(users, store, auth.SessionConfig{
		Secret: testSecret,
		TTL:    time.Hour,
		Issuer: "cafe-stock-test",
	})
	postingUC := ledger.NewPostingUseCase(&fakeTxRunner{db: db}, &fakeProductRepo{db: db}, &fakeLedgerRepo{db: db})

	engine := html.New("../../../views", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		PostingUC:  postingUC,
		CookieName: testCookieName,
		SessionTTL: time.Hour,
	})
	return app, db
}

// login hace POST /login y devuelve la cookie de sesión.
func login(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()
	resp := doForm(t, app, "/login", "username="+username+"&password="+password, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "login correcto debe redirigir")
	require.Equal(t, "/", resp.Header.Get("Location"))
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("el login debe fijar la cookie de sesión")
	return nil
}

func doGet(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doForm(t *testing.T, app *fiber.App, path, body string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_SinSesion_RedirigeALogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doGet(t, app, "/", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.NotContains(t, readBody(t, resp), "Café en grano",
		"la redirección no debe exponer datos del catálogo")
}

func TestRutasProtegidas_SinSesion_Redirigen(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/", "/entry/1", "/exit/1", "/ledger/1", "/logout"} {
		resp := doGet(t, app, path, nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, "ruta %s", path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), "ruta %s", path)
		resp.Body.Close()
	}
}

func TestLogin_Y_Catalogo(t *testing.T) {
	app, _ := newTestApp(t)

	cookie := login(t, app, "admin", testPassword)

	resp := doGet(t, app, "/", cookie)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Café en grano")
	assert.Contains(t, body, "10", "debe mostrar el stock actual")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app, _ := newTestApp(t)

	// Password incorrecta y usuario inexistente: misma respuesta genérica
	for _, body := range []string{
		"username=admin&password=incorrecta",
		"username=fantasma&password=" + testPassword,
	} {
		resp := doForm(t, app, "/login", body, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "usuario o contraseña incorrectos")
		for _, c := range resp.Cookies() {
			assert.NotEqual(t, testCookieName, c.Name, "el login fallido no debe fijar cookie")
		}
		resp.Body.Close()
	}
}

func TestEntrada_AumentaStock(t *testing.T) {
	app, db := newTestApp(t)
	cookie := login(t, app, "admin", testPassword)

	resp := doForm(t, app, "/entry/1", "quantity=5", cookie)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Equal(t, int64(15), db.stock(1))
	assert.Equal(t, 1, db.entryCount())
}

func TestSalida_DescuentaStock(t *testing.T) {
	app, db := newTestApp(t)
	cookie := login(t, app, "admin", testPassword)

	resp := doForm(t, app, "/exit/1", "quantity=4", cookie)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, int64(6), db.stock(1))
	assert.Equal(t, 1, db.entryCount())
}

func TestSalida_StockInsuficiente(t *testing.T) {
	app, db := newTestApp(t)
	cookie := login(t, app, "admin", testPassword)

	resp := doForm(t, app, "/exit/1", "quantity=99", cookie)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "supera el stock disponible")
	assert.Equal(t, int64(10), db.stock(1), "el rechazo no debe tocar el stock")
	assert.Equal(t, 0, db.entryCount(), "el rechazo no debe dejar asiento")
}

func TestEntrada_CantidadInvalida(t *testing.T) {
	app, db := newTestApp(t)
	cookie := login(t, app, "admin", testPassword)

	for _, quantity := range []string{"abc", "0", "-3", ""} {
		resp := doForm(t, app, "/entry/1", "quantity="+quantity, cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "quantity=%q", quantity)
		resp.Body.Close()
	}
	assert.Equal(t, int64(10), db.stock(1))
	assert.Equal(t, 0, db.entryCount())
}

func TestEntrada_ProductoInexistente(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := login(t, app, "admin", testPassword)

	for _, path := range []string{"/entry/42", "/exit/42", "/ledger/42"} {
		resp := doGet(t, app, path, cookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "ruta %s", path)
		resp.Body.Close()
	}

	resp := doForm(t, app, "/entry/42", "quantity=5", cookie)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFormulariosDeConfirmacion(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := login(t, app, "admin", testPassword)

	for _, path := range []string{"/entry/1", "/exit/1"} {
		resp := doGet(t, app, path, cookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "ruta %s", path)
		assert.Contains(t, readBody(t, resp), "Café en grano", "ruta %s", path)
		resp.Body.Close()
	}
}

func TestLogout_InvalidaSesion(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := login(t, app, "admin", testPassword)

	resp := doGet(t, app, "/logout", cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// La cookie vieja ya no autoriza
	resp = doGet(t, app, "/", cookie)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestHistorial_MuestraMovimientos(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := login(t, app, "admin", testPassword)

	resp := doForm(t, app, "/entry/1", "quantity=5", cookie)
	resp.Body.Close()

	resp = doGet(t, app, "/ledger/1", cookie)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Café en grano")
	assert.Contains(t, body, "Entrada")
}
