// Package registry holds the per-tab validation and save handlers that a
// save run executes in ascending order.
package registry

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// HandlerInfo describes a registered handler.
type HandlerInfo struct {
	Tab   domain.TabKey
	Order int
	Label string
}

type options struct {
	label   string
	timeout time.Duration
}

// Option customizes a single registration.
type Option func(*options)

// WithLabel names the handler in logs, spans and generic error messages.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithTimeout bounds a save handler's run. Validation handlers ignore it.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

type entry[F any] struct {
	info    HandlerInfo
	fn      F
	timeout time.Duration
	gen     uint64
}

// ordered is a set of handlers keyed by tab. Registering a tab twice
// replaces the earlier handler.
type ordered[F any] struct {
	mu      sync.RWMutex
	entries map[domain.TabKey]entry[F]
	gen     uint64
}

func newOrdered[F any]() *ordered[F] {
	return &ordered[F]{entries: make(map[domain.TabKey]entry[F])}
}

func (o *ordered[F]) register(tab domain.TabKey, order int, fn F, isNil bool, opts []Option) (func(), error) {
	if !tab.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTab, tab)
	}
	if isNil {
		return nil, fmt.Errorf("%w: nil function for tab %s", domain.ErrInvalidHandler, tab)
	}
	if order < 0 {
		return nil, fmt.Errorf("%w: negative order %d for tab %s", domain.ErrInvalidHandler, order, tab)
	}

	cfg := options{label: string(tab)}
	for _, opt := range opts {
		opt(&cfg)
	}

	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.entries[tab] = entry[F]{
		info:    HandlerInfo{Tab: tab, Order: order, Label: cfg.label},
		fn:      fn,
		timeout: cfg.timeout,
		gen:     gen,
	}
	o.mu.Unlock()

	// The returned func only removes this registration, so a stale
	// unregister from a previous mount cannot drop its replacement.
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if cur, ok := o.entries[tab]; ok && cur.gen == gen {
			delete(o.entries, tab)
		}
	}, nil
}

func (o *ordered[F]) unregister(tab domain.TabKey) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.entries[tab]; !ok {
		return false
	}
	delete(o.entries, tab)
	return true
}

func (o *ordered[F]) len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}

// sorted returns a stable copy ordered by order, then tab position, then key.
// Registration sequence never influences the result.
func (o *ordered[F]) sorted() []entry[F] {
	o.mu.RLock()
	out := make([]entry[F], 0, len(o.entries))
	for _, e := range o.entries {
		out = append(out, e)
	}
	o.mu.RUnlock()

	slices.SortFunc(out, func(a, b entry[F]) int {
		if a.info.Order != b.info.Order {
			return a.info.Order - b.info.Order
		}
		ai, bi := domain.TabIndex(a.info.Tab), domain.TabIndex(b.info.Tab)
		if ai != bi {
			return ai - bi
		}
		switch {
		case a.info.Tab < b.info.Tab:
			return -1
		case a.info.Tab > b.info.Tab:
			return 1
		}
		return 0
	})
	return out
}

func (o *ordered[F]) handlers() []HandlerInfo {
	entries := o.sorted()
	out := make([]HandlerInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}
