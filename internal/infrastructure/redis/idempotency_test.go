package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davihchagas/feedback-system-project/internal/application/ports"
	"github.com/davihchagas/feedback-system-project/internal/domain"
)

type fakeKV struct {
	data       map[string]string
	expireOnce bool
	err        error
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) SetNX(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value
	return true, nil
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	if f.expireOnce {
		f.expireOnce = false
		delete(f.data, key)
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestReserve_FlujoCompleto(t *testing.T) {
	kv := newFakeKV()
	s := &IdempotencyStore{kv: kv}
	ctx := context.Background()

	got, err := s.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyPending, got)

	require.NoError(t, s.Complete(ctx, "k", "FBK-1", time.Minute))
	got, err = s.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "FBK-1", got)

	require.NoError(t, s.Release(ctx, "k"))
	got, err = s.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReserve_ClaveExpiraEntreComandos(t *testing.T) {
	kv := newFakeKV()
	kv.data["k"] = "FBK-viejo"
	kv.expireOnce = true
	s := &IdempotencyStore{kv: kv}

	got, err := s.Reserve(context.Background(), "k", time.Minute)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, ports.IdempotencyPending, kv.data["k"])
}

func TestReserve_RedisCaidoEsStoreUnavailable(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	s := &IdempotencyStore{kv: kv}

	_, err := s.Reserve(context.Background(), "k", time.Minute)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
