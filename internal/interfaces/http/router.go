package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-stock/internal/application/auth"
	"github.com/jhoicas/cafe-stock/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	PostingUC  *ledger.PostingUseCase
	CookieName string
	SessionTTL time.Duration
}

// Router registra las rutas de la aplicación. Todo menos /login exige sesión.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName, deps.SessionTTL)
	app.Get("/login", authHandler.LoginForm)
	app.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren cookie de sesión válida)
	protected := app.Group("/", SessionMiddleware(deps.AuthUC, deps.CookieName))

	protected.Get("/logout", authHandler.Logout)

	catalogHandler := NewCatalogHandler(deps.PostingUC)
	protected.Get("/", catalogHandler.Index)

	movementHandler := NewMovementHandler(deps.PostingUC)
	protected.Get("/entry/:id", movementHandler.EntryForm)
	protected.Post("/entry/:id", movementHandler.PostEntry)
	protected.Get("/exit/:id", movementHandler.ExitForm)
	protected.Post("/exit/:id", movementHandler.PostExit)
	protected.Get("/ledger/:id", movementHandler.History)
}
