package save_affiliate

import (
	"context"
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

func TestExecute_NoProgramIsNoop(t *testing.T) {
	c := &usecasetest.Committer{}
	it := NewInteractor(repo.NewSettingsRepo(), repo.NewOutboxRepo(), c, clock.NewFake(time.Now().UTC()))

	require.NoError(t, it.Execute(context.Background(), &registry.SaveRequest{ProductID: "p1", Data: &domain.EditedFormData{}}))
	c.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
}

func TestExecute_UpsertsProgram(t *testing.T) {
	c := &usecasetest.Committer{}
	c.On("Apply", mock.Anything, mock.Anything).Return(nil)
	it := NewInteractor(repo.NewSettingsRepo(), repo.NewOutboxRepo(), c, clock.NewFake(time.Now().UTC()))

	aff := domain.DefaultAffiliate()
	data := domain.EditedFormData{Affiliate: &aff}
	require.NoError(t, it.Execute(context.Background(), &registry.SaveRequest{ProductID: "p1", Data: &data}))
	require.Len(t, c.Plans(), 1)
	assert.Equal(t, 2, c.Plans()[0].Len())
}
