package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/background"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

// Store holds the cart for one session. Local state is the source of truth
// for what the session sees; the backend is mirrored best-effort through the
// background queue and is only reconciled wholesale at login.
type Store struct {
	mu      sync.Mutex
	lines   []model.LineItem
	promo   *model.AppliedPromo
	backend Backend
	queue   *background.Queue
}

func NewStore(backend Backend, queue *background.Queue) *Store {
	return &Store{backend: backend, queue: queue}
}

// Lines returns a copy of the cart lines in display order.
func (s *Store) Lines() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Promo() *model.AppliedPromo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.promo == nil {
		return nil
	}
	p := *s.promo
	return &p
}

// AddItem appends a line, or increments quantity when a line with the same
// (product, size, color) key already exists.
func (s *Store) AddItem(item model.LineItem, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	key := item.Key()
	found := false
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		item.Quantity = qty
		s.lines = append(s.lines, item)
	}
	s.mu.Unlock()
	s.mirror()
}

// UpdateQuantity adjusts a line's quantity by delta, clamped so it never
// drops below 1. Removal is only via RemoveItem.
func (s *Store) UpdateQuantity(key model.LineKey, delta int) error {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].Key() == key {
			q := s.lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			s.lines[i].Quantity = q
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return errors.New("cart item not found")
	}
	s.mirror()
	return nil
}

// RemoveItem deletes a line. No-op if the key is absent.
func (s *Store) RemoveItem(key model.LineKey) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.mirror()
}

// Clear empties the cart and drops any applied promo.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.promo = nil
	backend := s.backend
	s.mu.Unlock()
	if backend != nil && s.queue != nil {
		s.queue.Enqueue("cart clear", func(ctx context.Context) error {
			return backend.Clear(ctx)
		})
	}
}

// ApplyPromo attaches a promo to the cart, replacing any previous one.
// Promos live only in session state, never on the server cart.
func (s *Store) ApplyPromo(p model.AppliedPromo) {
	s.mu.Lock()
	s.promo = &p
	s.mu.Unlock()
}

func (s *Store) RemovePromo() {
	s.mu.Lock()
	s.promo = nil
	s.mu.Unlock()
}

// replace swaps in a full server-fetched cart and backend, used by the
// one-time merge at login.
func (s *Store) replace(lines []model.LineItem, backend Backend) {
	s.mu.Lock()
	s.lines = lines
	s.backend = backend
	s.mu.Unlock()
}

// mirror pushes a snapshot of the cart to the backend without the caller
// waiting on it. Failures are logged by the queue and swallowed.
func (s *Store) mirror() {
	s.mu.Lock()
	backend := s.backend
	snapshot := make([]model.LineItem, len(s.lines))
	copy(snapshot, s.lines)
	s.mu.Unlock()
	if backend == nil || s.queue == nil {
		return
	}
	s.queue.Enqueue("cart mirror", func(ctx context.Context) error {
		return backend.Save(ctx, snapshot)
	})
}
