package machine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// Loader fetches and normalizes the product aggregate.
type Loader interface {
	Load(ctx context.Context, productID string) (domain.ServerDataSnapshot, error)
}

// Saver validates and persists data. On success it returns the committed
// working copy. Failures are a *domain.ValidationFailedError when nothing
// was persisted, or a *domain.SaveError naming the failing handler.
type Saver interface {
	Save(ctx context.Context, productID string, data domain.EditedFormData) (domain.EditedFormData, error)
}

type Option func(*Machine)

func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithMaxLoadAttempts(n int) Option {
	return func(m *Machine) { m.state = NewState(n) }
}

// WithActorTimeouts bounds a single load and a single save run. Zero means no bound.
func WithActorTimeouts(load, save time.Duration) Option {
	return func(m *Machine) {
		m.loadTimeout = load
		m.saveTimeout = save
	}
}

// Machine runs Transition under a lock and invokes the actors on entry to
// loading and saving. At most one actor is in flight at a time.
type Machine struct {
	mu      sync.Mutex
	state   State
	closed  bool
	working int
	idle    chan struct{}

	subs    map[int]chan State
	nextSub int

	loader      Loader
	saver       Saver
	loadTimeout time.Duration
	saveTimeout time.Duration
	logger      *zap.Logger
}

func New(loader Loader, saver Saver, opts ...Option) *Machine {
	m := &Machine{
		state:  NewState(DefaultMaxLoadAttempts),
		subs:   make(map[int]chan State),
		loader: loader,
		saver:  saver,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("form_machine")
	m.idle = make(chan struct{})
	close(m.idle)
	return m
}

// State returns a deep copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Send dispatches ev. Rejected events leave the state untouched and return
// an error wrapping domain.ErrEventRejected.
func (m *Machine) Send(ctx context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrMachineClosed
	}
	return m.dispatchLocked(ctx, ev)
}

func (m *Machine) dispatchLocked(ctx context.Context, ev Event) error {
	prev := m.state.Status
	next, err := Step(m.state, ev)
	if err != nil {
		m.logger.Info("event rejected",
			zap.String("product_id", m.state.Context.ProductID),
			zap.String("event", ev.Name()),
			zap.String("state", string(prev)),
			zap.Error(err),
		)
		return err
	}
	m.state = next
	m.logger.Debug("transition",
		zap.String("product_id", next.Context.ProductID),
		zap.String("event", ev.Name()),
		zap.String("from", string(prev)),
		zap.String("to", string(next.Status)),
	)

	switch next.Status {
	case StatusLoading:
		if prev != StatusLoading {
			m.invokeLoad(ctx, next.Context.ProductID)
		}
	case StatusSaving:
		if prev != StatusSaving {
			m.invokeSave(ctx, next.Context.ProductID, next.Context.Edited.Clone())
		}
	}
	m.publishLocked()
	return nil
}

// internal delivers an actor result. It bypasses the closed check so an
// in-flight save still settles while the machine is shutting down.
func (m *Machine) internal(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.dispatchLocked(context.Background(), ev); err != nil {
		m.logger.Warn("actor result dropped", zap.String("event", ev.Name()), zap.Error(err))
	}
}

func (m *Machine) beginLocked() {
	if m.working == 0 {
		m.idle = make(chan struct{})
	}
	m.working++
}

func (m *Machine) end() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.working--
	if m.working == 0 {
		close(m.idle)
	}
}

func actorContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	// Actors outlive the request that triggered them.
	ctx = context.WithoutCancel(ctx)
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func (m *Machine) invokeLoad(ctx context.Context, productID string) {
	m.beginLocked()
	actx, cancel := actorContext(ctx, m.loadTimeout)
	go func() {
		defer m.end()
		defer cancel()

		snap, err := m.loader.Load(actx, productID)
		if err != nil {
			m.logger.Warn("load failed", zap.String("product_id", productID), zap.Error(err))
			var lerr *domain.LoadError
			if !errors.As(err, &lerr) {
				err = &domain.LoadError{ProductID: productID, Err: err}
			}
			m.internal(LoadFailed{Err: err})
			return
		}
		m.internal(ReceiveData{Snapshot: snap})
	}()
}

func (m *Machine) invokeSave(ctx context.Context, productID string, data domain.EditedFormData) {
	m.beginLocked()
	actx, cancel := actorContext(ctx, m.saveTimeout)
	go func() {
		defer m.end()
		defer cancel()

		committed, err := m.saver.Save(actx, productID, data)
		m.internal(saveResultEvent(committed, err))
	}()
}

func saveResultEvent(committed domain.EditedFormData, err error) Event {
	if err == nil {
		return SaveSucceeded{Committed: committed}
	}
	var verr *domain.ValidationFailedError
	if errors.As(err, &verr) {
		return ValidationFailed{ErrorsByTab: verr.ErrorsByTab, FirstErrorTab: verr.FirstErrorTab}
	}
	var serr *domain.SaveError
	if errors.As(err, &serr) {
		return SaveFailed{Err: serr}
	}
	return SaveFailed{Err: &domain.SaveError{Err: err}}
}

// Wait blocks until no actor is in flight.
func (m *Machine) Wait(ctx context.Context) error {
	m.mu.Lock()
	idle := m.idle
	m.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load sends LOAD and waits for the aggregate to arrive.
func (m *Machine) Load(ctx context.Context, productID string) error {
	if err := m.Send(ctx, Load{ProductID: productID}); err != nil {
		return err
	}
	return m.settledLoad(ctx)
}

// Retry re-runs a failed load.
func (m *Machine) Retry(ctx context.Context) error {
	if err := m.Send(ctx, Retry{}); err != nil {
		return err
	}
	return m.settledLoad(ctx)
}

func (m *Machine) settledLoad(ctx context.Context) error {
	if err := m.Wait(ctx); err != nil {
		return err
	}
	st := m.State()
	if st.Status == StatusLoadError {
		return st.Context.LoadError
	}
	return nil
}

// SaveAll sends SAVE_ALL and waits for the outcome. The returned error is
// the failure surfaced to the user, if any.
func (m *Machine) SaveAll(ctx context.Context) (State, error) {
	if err := m.Send(ctx, SaveAll{}); err != nil {
		return m.State(), err
	}
	if err := m.Wait(ctx); err != nil {
		return m.State(), err
	}
	st := m.State()
	return st, st.Context.LastSaveError
}

// Subscribe returns a channel receiving a copy of every new state. Slow
// subscribers only see the latest state.
func (m *Machine) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan State, 1)
	id := m.nextSub
	m.nextSub++
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if c, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(c)
			}
		})
	}
}

func (m *Machine) publishLocked() {
	if len(m.subs) == 0 {
		return
	}
	st := m.state.Clone()
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

// Close rejects further events and waits for an in-flight actor to settle.
// A running save is never abandoned.
func (m *Machine) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	if err := m.Wait(ctx); err != nil {
		return fmt.Errorf("close form machine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
	return nil
}

// Closed reports whether Close was called.
func (m *Machine) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
