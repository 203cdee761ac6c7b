package save_upsell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/registry"
	"github.com/murkotick/product-form-service/internal/app/productform/repo"
	"github.com/murkotick/product-form-service/internal/app/productform/usecases/usecasetest"
	"github.com/murkotick/product-form-service/internal/pkg/clock"
)

func newInteractor(c *usecasetest.Committer) *Interactor {
	return NewInteractor(repo.NewSettingsRepo(), repo.NewOutboxRepo(), c, clock.NewFake(time.Now().UTC()))
}

func TestExecute_DropsURLWithoutCustomPage(t *testing.T) {
	c := &usecasetest.Committer{}
	c.On("Apply", mock.Anything, mock.Anything).Return(nil)

	data := domain.EditedFormData{Upsell: domain.Upsell{CustomPageURL: "https://example.com/thanks"}}
	require.NoError(t, newInteractor(c).Execute(context.Background(), &registry.SaveRequest{ProductID: "p1", Data: &data}))

	assert.Empty(t, data.Upsell.CustomPageURL)
	assert.Equal(t, 2, c.Plans()[0].Len())
}

func TestExecute_KeepsURLWithCustomPage(t *testing.T) {
	c := &usecasetest.Committer{}
	c.On("Apply", mock.Anything, mock.Anything).Return(nil)

	u := domain.Upsell{HasCustomThankYouPage: true, CustomPageURL: "https://example.com/thanks"}
	data := domain.EditedFormData{Upsell: u}
	require.NoError(t, newInteractor(c).Execute(context.Background(), &registry.SaveRequest{ProductID: "p1", Data: &data}))
	assert.Equal(t, u, data.Upsell)
}

func TestExecute_FailureLeavesDataUntouched(t *testing.T) {
	c := &usecasetest.Committer{}
	c.On("Apply", mock.Anything, mock.Anything).Return(errors.New("boom"))

	data := domain.EditedFormData{Upsell: domain.Upsell{CustomPageURL: "https://example.com/thanks"}}
	require.Error(t, newInteractor(c).Execute(context.Background(), &registry.SaveRequest{ProductID: "p1", Data: &data}))
	assert.Equal(t, "https://example.com/thanks", data.Upsell.CustomPageURL)
}
