package cart

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown cart session ids
var ErrNotFound = errors.New("cart not found")

type session struct {
	cart      *Cart
	updatedAt time.Time
}

// Store keeps carts in memory keyed by session id. Nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	now      func() time.Time
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Create starts a new empty cart and returns its session id
func (s *Store) Create(ctx context.Context) (string, *Cart) {
	id := uuid.NewString()
	c := New()

	s.mu.Lock()
	s.sessions[id] = &session{cart: c, updatedAt: s.now()}
	s.mu.Unlock()

	return id, c.Clone()
}

// Get returns a snapshot of the cart
func (s *Store) Get(ctx context.Context, id string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "get %q", id)
	}
	return sess.cart.Clone(), nil
}

// Update runs fn against the cart under the store lock and returns a
// snapshot of the result. An error from fn is returned unchanged and the
// cart keeps whatever fn did before failing.
func (s *Store) Update(ctx context.Context, id string, fn func(*Cart) error) (*Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "update %q", id)
	}

	if err := fn(sess.cart); err != nil {
		return nil, err
	}
	sess.updatedAt = s.now()

	return sess.cart.Clone(), nil
}

// Delete removes the cart. Deleting an unknown id returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return errors.Wrapf(ErrNotFound, "delete %q", id)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live carts
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Evict drops carts that have not been touched for longer than idle and
// returns how many were removed.
func (s *Store) Evict(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
