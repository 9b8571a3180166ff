package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/cafe-stock/internal/application/auth"
	"github.com/jhoicas/cafe-stock/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

var _ auth.SessionStore = (*RedisStore)(nil)

// RedisStore almacén de sesiones sobre Redis. El TTL de la clave coincide con
// la expiración de la sesión, así Redis purga solo.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore construye el store con un cliente ya conectado.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put guarda la sesión con TTL hasta su expiración.
func (s *RedisStore) Put(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("put session: sesión ya vencida")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Get devuelve la sesión o (nil, nil) si no existe o Redis ya la purgó.
func (s *RedisStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete destruye la sesión. Idempotente.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
