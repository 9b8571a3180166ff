package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-stock/internal/application/auth"
	"github.com/jhoicas/cafe-stock/internal/domain"
)

// Locals key para el UserID autenticado en Fiber.
const LocalUserID = "user_id"

// SessionMiddleware resuelve la cookie de sesión a un usuario autenticado.
// Sin sesión válida redirige a /login sin exponer nada de la página protegida.
func SessionMiddleware(authUC *auth.AuthUseCase, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(cookieName)
		userID, err := authUC.Authorize(c.Context(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
				"Message": "error interno, intente de nuevo",
			})
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de sesión).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
