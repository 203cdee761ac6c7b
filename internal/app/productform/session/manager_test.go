package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
	"github.com/murkotick/product-form-service/internal/app/productform/machine"
)

type loaderFunc func(ctx context.Context, productID string) (domain.ServerDataSnapshot, error)

func (f loaderFunc) Load(ctx context.Context, productID string) (domain.ServerDataSnapshot, error) {
	return f(ctx, productID)
}

type saverFunc func(ctx context.Context, productID string, data domain.EditedFormData) (domain.EditedFormData, error)

func (f saverFunc) Save(ctx context.Context, productID string, data domain.EditedFormData) (domain.EditedFormData, error) {
	return f(ctx, productID, data)
}

type factory struct {
	loader  machine.Loader
	saver   machine.Saver
	created atomic.Int32
}

func (f *factory) NewMachine() *machine.Machine {
	f.created.Add(1)
	return machine.New(f.loader, f.saver)
}

func snapshotLoader() loaderFunc {
	return func(_ context.Context, productID string) (domain.ServerDataSnapshot, error) {
		if productID == "missing" {
			return domain.ServerDataSnapshot{}, domain.ErrProductNotFound
		}
		return domain.NewSnapshot(domain.ServerDataSnapshot{
			ProductID: productID,
			General:   domain.General{Name: "Product " + productID},
		}), nil
	}
}

func echoSaver() saverFunc {
	return func(_ context.Context, _ string, data domain.EditedFormData) (domain.EditedFormData, error) {
		return data, nil
	}
}

func TestManager_OpenReusesMachineForSameProduct(t *testing.T) {
	f := &factory{loader: snapshotLoader(), saver: echoSaver()}
	mgr := NewManager(f, nil)
	ctx := context.Background()

	m1, err := mgr.Open(ctx, "s1", "p1")
	require.NoError(t, err)
	m2, err := mgr.Open(ctx, "s1", "p1")
	require.NoError(t, err)

	assert.Same(t, m1, m2)
	assert.Equal(t, int32(1), f.created.Load())
	assert.Equal(t, "Product p1", m1.State().Context.Server.General.Name)

	got, err := mgr.Get("s1")
	require.NoError(t, err)
	assert.Same(t, m1, got)
}

func TestManager_SwitchProductWaitsForSave(t *testing.T) {
	release := make(chan struct{})
	var saved atomic.Bool
	saver := saverFunc(func(_ context.Context, _ string, data domain.EditedFormData) (domain.EditedFormData, error) {
		<-release
		saved.Store(true)
		return data, nil
	})
	f := &factory{loader: snapshotLoader(), saver: saver}
	mgr := NewManager(f, nil)
	ctx := context.Background()

	m1, err := mgr.Open(ctx, "s1", "p1")
	require.NoError(t, err)
	name := "edited"
	require.NoError(t, m1.Send(ctx, machine.EditGeneral{Patch: domain.GeneralPatch{Name: &name}}))
	require.NoError(t, m1.Send(ctx, machine.SaveAll{}))

	opened := make(chan *machine.Machine)
	go func() {
		m2, err := mgr.Open(ctx, "s1", "p2")
		assert.NoError(t, err)
		opened <- m2
	}()

	select {
	case <-opened:
		t.Fatal("second product opened before the first save settled")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	m2 := <-opened

	assert.True(t, saved.Load())
	assert.True(t, m1.Closed())
	assert.NotSame(t, m1, m2)
	assert.Equal(t, "p2", m2.State().Context.ProductID)
	assert.Equal(t, name, m1.State().Context.Server.General.Name)
	assert.ErrorIs(t, m1.Send(ctx, machine.SetTab{Tab: domain.TabUpsell}), domain.ErrMachineClosed)
}

func TestManager_OpenLoadFailureKeepsMachine(t *testing.T) {
	f := &factory{loader: snapshotLoader(), saver: echoSaver()}
	mgr := NewManager(f, nil)

	m, err := mgr.Open(context.Background(), "s1", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	require.NotNil(t, m)
	assert.Equal(t, machine.StatusLoadError, m.State().Status)

	got, err := mgr.Get("s1")
	require.NoError(t, err)
	assert.Same(t, m, got)
}

func TestManager_CloseAndErrors(t *testing.T) {
	f := &factory{loader: snapshotLoader(), saver: echoSaver()}
	mgr := NewManager(f, nil)
	ctx := context.Background()

	_, err := mgr.Open(ctx, "", "p1")
	assert.ErrorIs(t, err, ErrEmptySessionID)

	_, err = mgr.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Close(ctx, "nope"), ErrSessionNotFound)

	m, err := mgr.Open(ctx, "s1", "p1")
	require.NoError(t, err)
	_, err = mgr.Open(ctx, "s2", "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, mgr.Len())

	require.NoError(t, mgr.Close(ctx, "s1"))
	assert.True(t, m.Closed())
	_, err = mgr.Get("s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, mgr.CloseAll(ctx))
	assert.Zero(t, mgr.Len())
}

func TestManager_CloseTimesOutOnStuckSave(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	saver := saverFunc(func(_ context.Context, _ string, data domain.EditedFormData) (domain.EditedFormData, error) {
		<-release
		return data, errors.New("late")
	})
	mgr := NewManager(&factory{loader: snapshotLoader(), saver: saver}, nil)
	ctx := context.Background()

	m, err := mgr.Open(ctx, "s1", "p1")
	require.NoError(t, err)
	name := "x"
	require.NoError(t, m.Send(ctx, machine.EditGeneral{Patch: domain.GeneralPatch{Name: &name}}))
	require.NoError(t, m.Send(ctx, machine.SaveAll{}))

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, mgr.Close(short, "s1"), context.DeadlineExceeded)
}
