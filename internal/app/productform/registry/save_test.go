package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

type callLog struct {
	mu    sync.Mutex
	calls []domain.TabKey
}

func (c *callLog) handler(tab domain.TabKey, err error) SaveFunc {
	return func(context.Context, *SaveRequest) error {
		c.mu.Lock()
		c.calls = append(c.calls, tab)
		c.mu.Unlock()
		return err
	}
}

func (c *callLog) get() []domain.TabKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.TabKey(nil), c.calls...)
}

func newRequest() *SaveRequest {
	return &SaveRequest{ProductID: "prod-1", RunID: "run-1", Data: &domain.EditedFormData{}}
}

func TestSaveRunAll_SequentialInOrder(t *testing.T) {
	var log callLog
	r := NewSaveRegistry(nil)
	for _, tab := range []domain.TabKey{domain.TabAffiliates, domain.TabGeneral, domain.TabUpsell, domain.TabCheckout} {
		order := map[domain.TabKey]int{
			domain.TabGeneral:    domain.OrderGeneral,
			domain.TabCheckout:   domain.OrderCheckoutSettings,
			domain.TabUpsell:     domain.OrderUpsell,
			domain.TabAffiliates: domain.OrderAffiliate,
		}[tab]
		_, err := r.Register(tab, order, log.handler(tab, nil))
		require.NoError(t, err)
	}

	res := r.RunAll(context.Background(), newRequest())

	require.NoError(t, res.Err())
	want := []domain.TabKey{domain.TabGeneral, domain.TabCheckout, domain.TabUpsell, domain.TabAffiliates}
	assert.Equal(t, want, log.get())
	assert.Equal(t, want, res.Executed())
}

// TestSaveRunAll_FailFast checks a failing handler stops later ones and that
// a second run re-invokes the handlers that already succeeded.
func TestSaveRunAll_FailFast(t *testing.T) {
	var log callLog
	boom := errors.New("affiliate api down")
	r := NewSaveRegistry(nil)
	_, err := r.Register(domain.TabGeneral, 10, log.handler(domain.TabGeneral, nil))
	require.NoError(t, err)
	_, err = r.Register(domain.TabAffiliates, 40, log.handler(domain.TabAffiliates, boom))
	require.NoError(t, err)
	_, err = r.Register(domain.TabLinks, 50, log.handler(domain.TabLinks, nil))
	require.NoError(t, err)

	res := r.RunAll(context.Background(), newRequest())
	require.Error(t, res.Err())
	assert.ErrorIs(t, res.Err(), boom)
	assert.Equal(t, domain.TabAffiliates, res.Failed.TabKey)
	assert.Equal(t, 40, res.Failed.Order)
	assert.Equal(t, []domain.TabKey{domain.TabGeneral, domain.TabAffiliates}, log.get())

	_ = r.RunAll(context.Background(), newRequest())
	assert.Equal(t, []domain.TabKey{
		domain.TabGeneral, domain.TabAffiliates,
		domain.TabGeneral, domain.TabAffiliates,
	}, log.get())
}

func TestSaveRunAll_RecoversPanic(t *testing.T) {
	r := NewSaveRegistry(nil)
	_, err := r.Register(domain.TabGeneral, 10, func(context.Context, *SaveRequest) error {
		panic("nil map")
	})
	require.NoError(t, err)

	res := r.RunAll(context.Background(), newRequest())
	assert.ErrorIs(t, res.Err(), domain.ErrHandlerPanicked)
	assert.Equal(t, domain.TabGeneral, res.Failed.TabKey)
}

func TestSaveRunAll_HandlersShareWorkingCopy(t *testing.T) {
	r := NewSaveRegistry(nil)
	_, err := r.Register(domain.TabGeneral, 10, func(_ context.Context, req *SaveRequest) error {
		req.Data.Offers.Items[0].ID = "offer-42"
		return nil
	})
	require.NoError(t, err)
	var seen string
	_, err = r.Register(domain.TabCheckout, 20, func(_ context.Context, req *SaveRequest) error {
		seen = req.Data.Offers.Items[0].ID
		return nil
	})
	require.NoError(t, err)

	req := newRequest()
	req.Data.Offers = domain.Offers{Items: []domain.Offer{{ID: "temp-1", Temporary: true}}}
	require.NoError(t, r.RunAll(context.Background(), req).Err())
	assert.Equal(t, "offer-42", seen)
}

func TestSaveRunAll_Timeout(t *testing.T) {
	r := NewSaveRegistry(nil)
	_, err := r.Register(domain.TabGeneral, 10, func(ctx context.Context, _ *SaveRequest) error {
		<-ctx.Done()
		return ctx.Err()
	}, WithTimeout(10*time.Millisecond))
	require.NoError(t, err)

	res := r.RunAll(context.Background(), newRequest())
	assert.ErrorIs(t, res.Err(), context.DeadlineExceeded)
}

func TestSaveRunAll_CanceledContextStopsBeforeHandler(t *testing.T) {
	var log callLog
	r := NewSaveRegistry(nil)
	_, err := r.Register(domain.TabGeneral, 10, log.handler(domain.TabGeneral, nil))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := r.RunAll(ctx, newRequest())

	assert.ErrorIs(t, res.Err(), context.Canceled)
	assert.Empty(t, log.get())
}

func TestSaveRegister_Replaces(t *testing.T) {
	r := NewSaveRegistry(nil)
	var log callLog
	_, err := r.Register(domain.TabGeneral, 10, log.handler("first", nil))
	require.NoError(t, err)
	_, err = r.Register(domain.TabGeneral, 10, log.handler("second", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, r.Len())
	require.NoError(t, r.RunAll(context.Background(), newRequest()).Err())
	assert.Equal(t, []domain.TabKey{"second"}, log.get())
}
