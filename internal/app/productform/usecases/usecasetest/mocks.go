// Package usecasetest holds test doubles shared by the save handler tests.
package usecasetest

import (
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	commitplan "github.com/murkotick/product-form-service/internal/pkg/committer"
)

// Committer records every applied plan.
type Committer struct {
	mock.Mock

	mu    sync.Mutex
	plans []*commitplan.Plan
}

func (c *Committer) Apply(ctx context.Context, plan *commitplan.Plan) error {
	c.mu.Lock()
	c.plans = append(c.plans, plan)
	c.mu.Unlock()
	args := c.Called(ctx, plan)
	return args.Error(0)
}

// Plans returns the plans passed to Apply, in call order.
func (c *Committer) Plans() []*commitplan.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*commitplan.Plan(nil), c.plans...)
}

// ImageStore is a mock contracts.ImageStore that keeps uploaded bodies.
type ImageStore struct {
	mock.Mock

	mu      sync.Mutex
	Objects map[string][]byte
}

func (s *ImageStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	args := s.Called(ctx, key, contentType)
	if args.Error(1) == nil {
		s.mu.Lock()
		if s.Objects == nil {
			s.Objects = map[string][]byte{}
		}
		s.Objects[key] = b
		s.mu.Unlock()
	}
	return args.String(0), args.Error(1)
}

func (s *ImageStore) Delete(ctx context.Context, key string) error {
	args := s.Called(ctx, key)
	return args.Error(0)
}
