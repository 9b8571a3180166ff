package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafe-stock/internal/application/auth"
	"github.com/jhoicas/cafe-stock/internal/application/dto"
	"github.com/jhoicas/cafe-stock/internal/domain"
)

// AuthHandler maneja login y logout.
type AuthHandler struct {
	uc         *auth.AuthUseCase
	cookieName string
	sessionTTL time.Duration
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, sessionTTL: sessionTTL}
}

// LoginForm renderiza el formulario de login.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

// Login consume username/password del formulario. En éxito fija la cookie de
// sesión y redirige al catálogo; en fallo re-renderiza con un error genérico
// que no distingue usuario inexistente de contraseña incorrecta.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginForm
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{
			"Error": "usuario o contraseña incorrectos",
		})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{
			"Error": "usuario o contraseña incorrectos",
		})
	}

	tokenString, err := h.uc.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
				"Error": "usuario o contraseña incorrectos",
			})
		}
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
			"Message": "error interno, intente de nuevo",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    tokenString,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout destruye la sesión, borra la cookie y redirige al login.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(c.Context(), c.Cookies(h.cookieName))
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.Redirect("/login", fiber.StatusSeeOther)
}
