package actors

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/registry"
)

type recordingObserver struct {
	mu          sync.Mutex
	validations []registry.ValidationResult
	saves       []registry.SaveAllResult
}

func (o *recordingObserver) ValidationFailed(_ string, res registry.ValidationResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.validations = append(o.validations, res)
}

func (o *recordingObserver) SaveFinished(_ string, res registry.SaveAllResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.saves = append(o.saves, res)
}

func newRegistries(t *testing.T) (*registry.ValidationRegistry, *registry.SaveRegistry) {
	t.Helper()
	return registry.NewValidationRegistry(nil), registry.NewSaveRegistry(nil)
}

func TestSaveActor_ValidationFailureSkipsHandlers(t *testing.T) {
	vr, sr := newRegistries(t)
	_, err := vr.Register(domain.TabCheckout, domain.OrderCheckoutSettings, func(domain.EditedFormData) domain.FieldErrors {
		return domain.FieldErrors{"pix_gateway": "not configured"}
	})
	require.NoError(t, err)

	called := false
	_, err = sr.Register(domain.TabGeneral, domain.OrderGeneral, func(context.Context, *registry.SaveRequest) error {
		called = true
		return nil
	})
	require.NoError(t, err)

	obs := &recordingObserver{}
	data := domain.EditedFormData{General: domain.General{Name: "x"}}
	got, err := NewSaveActor(vr, sr, WithObserver(obs)).Save(context.Background(), "p1", data)

	var verr *domain.ValidationFailedError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.TabCheckout, verr.FirstErrorTab)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.False(t, called)
	assert.Equal(t, data, got)
	assert.Len(t, obs.validations, 1)
	assert.Empty(t, obs.saves)
}

func TestSaveActor_ReturnsCommittedCopy(t *testing.T) {
	vr, sr := newRegistries(t)
	var runIDs []string
	_, err := sr.Register(domain.TabGeneral, domain.OrderGeneral, func(_ context.Context, req *registry.SaveRequest) error {
		runIDs = append(runIDs, req.RunID)
		assert.Equal(t, "p1", req.ProductID)
		req.Data.Image = domain.Image{URL: "https://cdn.example.com/new.png"}
		return nil
	})
	require.NoError(t, err)

	obs := &recordingObserver{}
	a := NewSaveActor(vr, sr, WithObserver(obs))

	data := domain.EditedFormData{Image: domain.Image{Upload: &domain.ImageUpload{FileName: "a.png", ContentType: "image/png", Data: []byte{1}}}}
	committed, err := a.Save(context.Background(), "p1", data)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/new.png", committed.Image.URL)
	assert.NotNil(t, data.Image.Upload, "input must not be modified")

	_, err = a.Save(context.Background(), "p1", data)
	require.NoError(t, err)
	require.Len(t, runIDs, 2)
	assert.NotEqual(t, runIDs[0], runIDs[1])
	assert.Len(t, obs.saves, 2)
}

func TestSaveActor_HandlerFailure(t *testing.T) {
	vr, sr := newRegistries(t)
	_, err := sr.Register(domain.TabGeneral, domain.OrderGeneral, func(_ context.Context, req *registry.SaveRequest) error {
		req.Data.General.Name = "mutated"
		return nil
	})
	require.NoError(t, err)
	_, err = sr.Register(domain.TabUpsell, domain.OrderUpsell, func(context.Context, *registry.SaveRequest) error {
		return errors.New("network")
	})
	require.NoError(t, err)

	obs := &recordingObserver{}
	data := domain.EditedFormData{General: domain.General{Name: "orig"}}
	got, err := NewSaveActor(vr, sr, WithObserver(obs)).Save(context.Background(), "p1", data)

	var serr *domain.SaveError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, domain.TabUpsell, serr.TabKey)
	assert.Equal(t, domain.OrderUpsell, serr.Order)
	assert.Equal(t, "orig", got.General.Name)
	require.Len(t, obs.saves, 1)
	assert.Equal(t, []domain.TabKey{domain.TabGeneral, domain.TabUpsell}, obs.saves[0].Executed())
}
