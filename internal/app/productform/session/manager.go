// Package session keeps one form machine per client session. A session
// edits one product at a time; opening another product tears the old
// machine down first.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/murkotick/product-form-service/internal/app/productform/machine"
)

var (
	// ErrSessionNotFound indicates an operation on a session that was never opened or already closed.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptySessionID indicates an Open without a session id.
	ErrEmptySessionID = errors.New("session id is required")
)

// Factory creates idle form machines.
type Factory interface {
	NewMachine() *machine.Machine
}

type slot struct {
	mu        sync.Mutex
	productID string
	m         *machine.Machine
}

// Manager maps session ids to form machines.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*slot

	factory Factory
	logger  *zap.Logger
}

func NewManager(factory Factory, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*slot),
		factory:  factory,
		logger:   logger.Named("session_manager"),
	}
}

func (mgr *Manager) slotFor(sessionID string) *slot {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	s, ok := mgr.sessions[sessionID]
	if !ok {
		s = &slot{}
		mgr.sessions[sessionID] = s
	}
	return s
}

// Open returns the machine editing productID in sessionID. The machine is
// reused when the session already edits that product. Otherwise the previous
// machine is closed, which waits for its in-flight save, and a new machine
// is created and loaded. A failed load keeps the machine so it can be retried.
func (mgr *Manager) Open(ctx context.Context, sessionID, productID string) (*machine.Machine, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	s := mgr.slotFor(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.m != nil && s.productID == productID && !s.m.Closed() {
		return s.m, nil
	}

	if s.m != nil {
		mgr.logger.Info("switching product",
			zap.String("session_id", sessionID),
			zap.String("from_product_id", s.productID),
			zap.String("to_product_id", productID),
		)
		if err := s.m.Close(ctx); err != nil {
			return nil, fmt.Errorf("close previous form: %w", err)
		}
		s.m, s.productID = nil, ""
	}

	m := mgr.factory.NewMachine()
	s.m, s.productID = m, productID

	if err := m.Load(ctx, productID); err != nil {
		mgr.logger.Warn("open failed",
			zap.String("session_id", sessionID),
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return m, err
	}
	return m, nil
}

// Get returns the machine of sessionID.
func (mgr *Manager) Get(sessionID string) (*machine.Machine, error) {
	mgr.mu.Lock()
	s, ok := mgr.sessions[sessionID]
	mgr.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		return nil, ErrSessionNotFound
	}
	return s.m, nil
}

// Close tears down sessionID, waiting for an in-flight save.
func (mgr *Manager) Close(ctx context.Context, sessionID string) error {
	mgr.mu.Lock()
	s, ok := mgr.sessions[sessionID]
	delete(mgr.sessions, sessionID)
	mgr.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		return nil
	}
	err := s.m.Close(ctx)
	s.m = nil
	return err
}

// CloseAll closes every session; used on shutdown.
func (mgr *Manager) CloseAll(ctx context.Context) error {
	mgr.mu.Lock()
	ids := make([]string, 0, len(mgr.sessions))
	for id := range mgr.sessions {
		ids = append(ids, id)
	}
	mgr.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := mgr.Close(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			errs = append(errs, fmt.Errorf("session %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of open sessions.
func (mgr *Manager) Len() int {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return len(mgr.sessions)
}
