package cart

import (
	"context"
	"sync"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

// Backend is the persistence contract shared by guest and authenticated
// carts: load everything, save everything, merge a batch of lines
// additively in one shot, clear. Merge must be all-or-nothing so a failed
// login merge can be retried without double-counting.
type Backend interface {
	Load(ctx context.Context) ([]model.LineItem, error)
	Save(ctx context.Context, lines []model.LineItem) error
	Merge(ctx context.Context, lines []model.LineItem) ([]model.LineItem, error)
	Clear(ctx context.Context) error
}

// MemoryBackend backs guest sessions. It only exists so both modes satisfy
// the same contract; the Store itself already holds the authoritative copy.
type MemoryBackend struct {
	mu    sync.Mutex
	lines []model.LineItem
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (m *MemoryBackend) Load(ctx context.Context) ([]model.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.LineItem, len(m.lines))
	copy(out, m.lines)
	return out, nil
}

func (m *MemoryBackend) Save(ctx context.Context, lines []model.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = make([]model.LineItem, len(lines))
	copy(m.lines, lines)
	return nil
}

func (m *MemoryBackend) Merge(ctx context.Context, lines []model.LineItem) ([]model.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range lines {
		found := false
		for i := range m.lines {
			if m.lines[i].Key() == line.Key() {
				m.lines[i].Quantity += line.Quantity
				found = true
				break
			}
		}
		if !found {
			m.lines = append(m.lines, line)
		}
	}
	out := make([]model.LineItem, len(m.lines))
	copy(out, m.lines)
	return out, nil
}

func (m *MemoryBackend) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
	return nil
}

// ServerStore is the slice of the cart repository the server backend needs.
type ServerStore interface {
	GetCart(ctx context.Context, userID int64) ([]model.LineItem, error)
	MergeCart(ctx context.Context, userID int64, lines []model.LineItem) ([]model.LineItem, error)
	ReplaceCart(ctx context.Context, userID int64, lines []model.LineItem) error
	ClearCart(ctx context.Context, userID int64) error
}

// ServerBackend mirrors a session cart into the per-user cart table.
type ServerBackend struct {
	store  ServerStore
	userID int64
}

func NewServerBackend(store ServerStore, userID int64) *ServerBackend {
	return &ServerBackend{store: store, userID: userID}
}

func (b *ServerBackend) Load(ctx context.Context) ([]model.LineItem, error) {
	return b.store.GetCart(ctx, b.userID)
}

func (b *ServerBackend) Save(ctx context.Context, lines []model.LineItem) error {
	return b.store.ReplaceCart(ctx, b.userID, lines)
}

func (b *ServerBackend) Merge(ctx context.Context, lines []model.LineItem) ([]model.LineItem, error) {
	return b.store.MergeCart(ctx, b.userID, lines)
}

func (b *ServerBackend) Clear(ctx context.Context) error {
	return b.store.ClearCart(ctx, b.userID)
}
