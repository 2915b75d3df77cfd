package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

type payload struct {
	Names []string `json:"names"`
}

func TestStore_JSONRoundTrip(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	var got payload
	found, err := s.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SetJSON(ctx, "k", payload{Names: []string{"a", "b"}}, time.Minute))
	found, err = s.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got.Names)

	mr.FastForward(2 * time.Minute)
	found, err = s.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_CachesAfterFirstFetch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (payload, error) {
		calls++
		return payload{Names: []string{"x"}}, nil
	}

	v, err := Aside(ctx, s, "aside", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, v.Names)

	v, err = Aside(ctx, s, "aside", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, v.Names)
	assert.Equal(t, 1, calls)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("db down")
	_, err := Aside(ctx, s, "fail", time.Minute, func(context.Context) (payload, error) {
		return payload{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("fail"))
}

func TestAside_CollapsesConcurrentMisses(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (payload, error) {
		calls.Add(1)
		<-release
		return payload{Names: []string{"shared"}}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Aside(ctx, s, "busy", time.Minute, fetch)
			assert.NoError(t, err)
			assert.Equal(t, []string{"shared"}, v.Names)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(8))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestAside_NilStoreFetchesEveryTime(t *testing.T) {
	var s *Store
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := Aside(context.Background(), s, "k", time.Minute, func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestStore_VersionBump(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, int64(0), s.Version(ctx, ListingNamespace))
	s.BumpVersion(ctx, ListingNamespace)
	s.BumpVersion(ctx, ListingNamespace)
	assert.Equal(t, int64(2), s.Version(ctx, ListingNamespace))
	assert.NotEqual(t, ListingKey(0, "h"), ListingKey(2, "h"))
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient("http://localhost:6379")
	assert.Error(t, err)
}
