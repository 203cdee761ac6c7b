package machine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

type mockLoader struct{ mock.Mock }

func (m *mockLoader) Load(ctx context.Context, productID string) (domain.ServerDataSnapshot, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.ServerDataSnapshot), args.Error(1)
}

// blockingSaver lets a test hold a save run open.
type blockingSaver struct {
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
	seen    []domain.EditedFormData
	err     error
}

func newBlockingSaver() *blockingSaver {
	return &blockingSaver{started: make(chan struct{}, 4), release: make(chan struct{})}
}

func (b *blockingSaver) Save(_ context.Context, _ string, data domain.EditedFormData) (domain.EditedFormData, error) {
	b.mu.Lock()
	b.seen = append(b.seen, data.Clone())
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return data, b.err
}

func loadedMachine(t *testing.T, saver Saver) *Machine {
	t.Helper()
	loader := &mockLoader{}
	loader.On("Load", mock.Anything, "prod-1").Return(sampleSnapshot(), nil).Once()

	m := New(loader, saver)
	require.NoError(t, m.Load(context.Background(), "prod-1"))
	require.Equal(t, StatusReady, m.State().Status)
	loader.AssertExpectations(t)
	return m
}

func TestMachine_LoadFailureAndRetry(t *testing.T) {
	loader := &mockLoader{}
	boom := errors.New("backend unavailable")
	loader.On("Load", mock.Anything, "prod-1").Return(domain.ServerDataSnapshot{}, boom).Once()
	loader.On("Load", mock.Anything, "prod-1").Return(sampleSnapshot(), nil).Once()

	m := New(loader, newBlockingSaver())
	err := m.Load(context.Background(), "prod-1")

	var lerr *domain.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusLoadError, m.State().Status)

	require.NoError(t, m.Retry(context.Background()))
	st := m.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, "prod-1", st.Context.Server.ProductID)
	loader.AssertExpectations(t)
}

// TestMachine_EditDuringSaveIsRejected holds a save open, edits, then lets it
// finish: only the pre-save edit is persisted.
func TestMachine_EditDuringSaveIsRejected(t *testing.T) {
	saver := newBlockingSaver()
	m := loadedMachine(t, saver)
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, EditGeneral{Patch: domain.GeneralPatch{Name: ptr("Pre-save")}}))
	require.NoError(t, m.Send(ctx, SaveAll{}))
	<-saver.started

	err := m.Send(ctx, EditGeneral{Patch: domain.GeneralPatch{Name: ptr("Mid-save")}})
	assert.ErrorIs(t, err, domain.ErrSaveInProgress)
	assert.ErrorIs(t, m.Send(ctx, SaveAll{}), domain.ErrSaveInProgress)

	close(saver.release)
	require.NoError(t, m.Wait(ctx))

	st := m.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, "Pre-save", st.Context.Server.General.Name)
	assert.Equal(t, "Pre-save", st.Context.Edited.General.Name)
	assert.False(t, IsDirty(st))
	require.Len(t, saver.seen, 1)
	assert.Equal(t, "Pre-save", saver.seen[0].General.Name)
}

type funcSaver func(ctx context.Context, productID string, data domain.EditedFormData) (domain.EditedFormData, error)

func (f funcSaver) Save(ctx context.Context, productID string, data domain.EditedFormData) (domain.EditedFormData, error) {
	return f(ctx, productID, data)
}

func TestMachine_SaveAllOutcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("validation failure", func(t *testing.T) {
		m := loadedMachine(t, funcSaver(func(context.Context, string, domain.EditedFormData) (domain.EditedFormData, error) {
			return domain.EditedFormData{}, &domain.ValidationFailedError{
				FirstErrorTab: domain.TabGeneral,
				ErrorsByTab:   domain.ErrorsByTab{domain.TabGeneral: {"general.description": "too short"}},
			}
		}))
		require.NoError(t, m.Send(ctx, SetTab{Tab: domain.TabAffiliates}))
		require.NoError(t, m.Send(ctx, EditGeneral{Patch: domain.GeneralPatch{Description: ptr("short")}}))

		st, err := m.SaveAll(ctx)
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
		assert.Equal(t, domain.TabGeneral, st.ActiveTab())
		assert.True(t, st.TabErrors()[domain.TabGeneral].HasError)
		assert.Equal(t, "short", st.Context.Edited.General.Description)
	})

	t.Run("handler failure", func(t *testing.T) {
		m := loadedMachine(t, funcSaver(func(context.Context, string, domain.EditedFormData) (domain.EditedFormData, error) {
			return domain.EditedFormData{}, &domain.SaveError{TabKey: domain.TabUpsell, Order: 30, Err: errors.New("timeout")}
		}))
		require.NoError(t, m.Send(ctx, EditUpsell{Patch: domain.UpsellPatch{RedirectIgnoringOrderBumpFailures: ptr(true)}}))
		before := m.State().Context.Edited

		st, err := m.SaveAll(ctx)
		var serr *domain.SaveError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, domain.TabUpsell, st.ActiveTab())
		assert.Equal(t, before, st.Context.Edited)
		assert.True(t, CanSave(st), "user can retry")
	})

	t.Run("unclassified error", func(t *testing.T) {
		m := loadedMachine(t, funcSaver(func(context.Context, string, domain.EditedFormData) (domain.EditedFormData, error) {
			return domain.EditedFormData{}, errors.New("boom")
		}))
		require.NoError(t, m.Send(ctx, EditUpsell{Patch: domain.UpsellPatch{RedirectIgnoringOrderBumpFailures: ptr(true)}}))

		st, err := m.SaveAll(ctx)
		require.Error(t, err)
		assert.Equal(t, StatusReady, st.Status)
		assert.Equal(t, domain.TabGeneral, st.ActiveTab())
	})
}

func TestMachine_SubscribeReceivesStates(t *testing.T) {
	m := loadedMachine(t, newBlockingSaver())
	ch, cancel := m.Subscribe()
	defer cancel()

	require.NoError(t, m.Send(context.Background(), SetTab{Tab: domain.TabCheckout}))

	select {
	case st := <-ch:
		assert.Equal(t, domain.TabCheckout, st.ActiveTab())
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}
}

// TestMachine_CloseWaitsForInFlightSave checks teardown lets a running save finish.
func TestMachine_CloseWaitsForInFlightSave(t *testing.T) {
	saver := newBlockingSaver()
	m := loadedMachine(t, saver)
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, EditGeneral{Patch: domain.GeneralPatch{Name: ptr("X")}}))
	require.NoError(t, m.Send(ctx, SaveAll{}))
	<-saver.started

	closed := make(chan error, 1)
	go func() { closed <- m.Close(ctx) }()

	select {
	case <-closed:
		t.Fatal("Close returned while a save was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(saver.release)
	require.NoError(t, <-closed)
	assert.Equal(t, "X", m.State().Context.Server.General.Name)
	assert.ErrorIs(t, m.Send(ctx, SetTab{Tab: domain.TabGeneral}), domain.ErrMachineClosed)
	assert.True(t, m.Closed())
}

func TestMachine_CloseHonorsContext(t *testing.T) {
	saver := newBlockingSaver()
	m := loadedMachine(t, saver)
	defer close(saver.release)

	require.NoError(t, m.Send(context.Background(), EditGeneral{Patch: domain.GeneralPatch{Name: ptr("X")}}))
	require.NoError(t, m.Send(context.Background(), SaveAll{}))
	<-saver.started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Close(ctx), context.DeadlineExceeded)
}
