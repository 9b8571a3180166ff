package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/cafe-stock/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
)

// EnsureSchema crea las tres tablas si no existen.
// El CHECK stock >= 0 es la última línea de defensa del invariante; la
// verificación de stock insuficiente ocurre antes, en el caso de uso.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			stock      BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			min_stock  BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id         BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES products(id),
			kind       TEXT NOT NULL CHECK (kind IN ('IN', 'OUT')),
			quantity   BIGINT NOT NULL CHECK (quantity > 0),
			user_id    TEXT NOT NULL REFERENCES users(id),
			posted_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_product
			ON ledger_entries (product_id, posted_at DESC)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Usuarios demo sembrados cuando la tabla users está vacía.
// Fixture de desarrollo, nunca para producción.
var demoUsers = []struct {
	Name     string
	Password string
}{
	{"admin", "admin123"},
	{"gerente", "gerente123"},
	{"barista1", "barista123"},
	{"barista2", "barista123"},
	{"cocina", "cocina123"},
	{"bodega", "bodega123"},
}

// Catálogo demo sembrado cuando la tabla products está vacía.
var demoProducts = []entity.Product{
	{Name: "Café en grano", Stock: 10, MinStock: 3},
	{Name: "Leche entera", Stock: 20, MinStock: 5},
	{Name: "Azúcar", Stock: 15, MinStock: 4},
	{Name: "Vasos 12oz", Stock: 200, MinStock: 50},
	{Name: "Croissant", Stock: 12, MinStock: 6},
}

// SeedDemo siembra usuarios y catálogo demo si las tablas están vacías.
func SeedDemo(ctx context.Context, pool *pgxpool.Pool) error {
	userRepo := NewUserRepository(pool)
	count, err := userRepo.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		now := time.Now()
		for _, du := range demoUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(du.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password demo: %w", err)
			}
			user := &entity.User{
				ID:           uuid.New().String(),
				Name:         du.Name,
				PasswordHash: string(hash),
				CreatedAt:    now,
			}
			if err := userRepo.Create(user); err != nil {
				return err
			}
		}
	}

	var productCount int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&productCount); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if productCount == 0 {
		productRepo := NewProductRepository(pool)
		now := time.Now()
		for i := range demoProducts {
			p := demoProducts[i]
			p.CreatedAt = now
			p.UpdatedAt = now
			if err := productRepo.Create(&p); err != nil {
				return err
			}
		}
	}
	return nil
}
