package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	values map[string]string
	getErr error
	setErr error
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func TestGet_DefaultsToLight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	require.Equal(t, Light, Get(ctx, &fakeKV{values: map[string]string{}}))
	require.Equal(t, Light, Get(ctx, &fakeKV{values: map[string]string{StorageKey: "sepia"}}))
	require.Equal(t, Light, Get(ctx, &fakeKV{getErr: errors.New("io")}))
}

func TestSetGetRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := &fakeKV{values: map[string]string{}}

	require.NoError(t, Set(ctx, kv, Dark))
	require.Equal(t, Dark, Get(ctx, kv))
}

func TestSet_RejectsInvalidValue(t *testing.T) {
	t.Parallel()

	kv := &fakeKV{values: map[string]string{}}
	require.Error(t, Set(context.Background(), kv, "sepia"))
	require.Empty(t, kv.values)
}

func TestSet_SwallowsWriteFault(t *testing.T) {
	t.Parallel()

	kv := &fakeKV{setErr: errors.New("quota")}
	require.NoError(t, Set(context.Background(), kv, Dark))
}
