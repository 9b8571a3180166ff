package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/cafe-stock/internal/application/auth"
	"github.com/jhoicas/cafe-stock/internal/domain/entity"
)

var _ auth.SessionStore = (*MemoryStore)(nil)

// MemoryStore almacén de sesiones en memoria de proceso.
// Para development y tests; en producción usar RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	stop     chan struct{}
	done     chan struct{}
}

// NewMemoryStore construye el store y arranca la purga periódica de sesiones vencidas.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]entity.Session),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

// Put guarda la sesión.
func (s *MemoryStore) Put(ctx context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

// Get devuelve la sesión o (nil, nil) si no existe o ya venció.
func (s *MemoryStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		_ = s.Delete(ctx, id)
		return nil, nil
	}
	copied := session
	return &copied, nil
}

// Delete destruye la sesión. Idempotente.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close detiene la purga periódica.
func (s *MemoryStore) Close() {
	close(s.stop)
	<-s.done
}

func (s *MemoryStore) sweep(interval time.Duration) {
	defer close(s.done)
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, session := range s.sessions {
				if session.Expired(now) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
