package pokeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

type fakeAPI struct {
	server *httptest.Server
	hits   atomic.Int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/ability/overgrow/", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"id":   65,
			"name": "overgrow",
			"effect_entries": []map[string]any{
				{"effect": "Powers up Grass moves.", "short_effect": "Grass boost", "language": map[string]string{"name": "en"}},
			},
		})
	})
	mux.HandleFunc("/api/v2/ability/", func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		if r.URL.Path != "/api/v2/ability/" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"count": 367,
			"next":  "https://pokeapi.co/api/v2/ability/?offset=12&limit=2",
			"results": []map[string]string{
				{"name": "stench", "url": "https://pokeapi.co/api/v2/ability/1/"},
				{"name": "drizzle", "url": "https://pokeapi.co/api/v2/ability/2/"},
			},
		})
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) base() string {
	return f.server.URL + "/api/v2"
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient(logger)
		require.NoError(t, err)
		assert.Equal(t, "https://pokeapi.co/api/v2", client.BaseURL())
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
		assert.False(t, client.HasOfflineStore())
	})

	t.Run("invalid base URL", func(t *testing.T) {
		_, err := NewClient(logger, WithBaseURL("not a url"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with rate limit", func(t *testing.T) {
		client, err := NewClient(logger, WithRateLimit(5, 10))
		require.NoError(t, err)
		rt, ok := client.httpClient.Transport.(*RateLimitedRoundTripper)
		require.True(t, ok)
		assert.Equal(t, 10, rt.Limiter.Burst())
	})

	t.Run("negative rate limit", func(t *testing.T) {
		_, err := NewClient(logger, WithRateLimit(-1, 1))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestClientGetUsesCache(t *testing.T) {
	api := newFakeAPI(t)
	client, err := NewClient(zerolog.Nop(), WithBaseURL(api.base()))
	require.NoError(t, err)

	for range 3 {
		var ability Ability
		require.NoError(t, client.Get(context.Background(), EndpointAbility, "  Overgrow ", &ability))
		assert.Equal(t, 65, ability.ID)
		effect, short := EnglishEffect(ability.EffectEntries)
		assert.Equal(t, "Powers up Grass moves.", effect)
		assert.Equal(t, "Grass boost", short)
	}
	assert.Equal(t, int32(1), api.hits.Load())

	require.NoError(t, client.ClearCache(context.Background()))
	var ability Ability
	require.NoError(t, client.Get(context.Background(), EndpointAbility, "overgrow", &ability))
	assert.Equal(t, int32(2), api.hits.Load())
}

func TestClientSharedRequestSurvivesCallerCancel(t *testing.T) {
	var hits atomic.Int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		started <- struct{}{}
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": "bulbasaur"})
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(zerolog.Nop(), WithBaseURL(server.URL+"/api/v2"))
	require.NoError(t, err)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		var p Pokemon
		errA <- client.Get(ctxA, EndpointPokemon, "1", &p)
	}()
	<-started

	type outcome struct {
		p   Pokemon
		err error
	}
	resB := make(chan outcome, 1)
	go func() {
		var p Pokemon
		err := client.Get(context.Background(), EndpointPokemon, "1", &p)
		resB <- outcome{p, err}
	}()

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	select {
	case out := <-resB:
		require.NoError(t, out.err)
		assert.Equal(t, "bulbasaur", out.p.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("second caller did not return")
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestClientCacheExpiry(t *testing.T) {
	api := newFakeAPI(t)
	client, err := NewClient(zerolog.Nop(), WithBaseURL(api.base()), WithCacheTTL(time.Minute))
	require.NoError(t, err)

	now := time.Now()
	client.cache.now = func() time.Time { return now }

	var ability Ability
	require.NoError(t, client.Get(context.Background(), EndpointAbility, "overgrow", &ability))
	require.NoError(t, client.Get(context.Background(), EndpointAbility, "overgrow", &ability))
	assert.Equal(t, int32(1), api.hits.Load())

	now = now.Add(time.Minute)
	require.NoError(t, client.Get(context.Background(), EndpointAbility, "overgrow", &ability))
	assert.Equal(t, int32(2), api.hits.Load())
}

func TestClientNotFound(t *testing.T) {
	api := newFakeAPI(t)
	client, err := NewClient(zerolog.Nop(), WithBaseURL(api.base()))
	require.NoError(t, err)

	var ability Ability
	err = client.Get(context.Background(), EndpointAbility, "missingno", &ability)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatusCode())
	assert.True(t, IsNotFound(err))
}

func TestClientList(t *testing.T) {
	api := newFakeAPI(t)
	client, err := NewClient(zerolog.Nop(), WithBaseURL(api.base()))
	require.NoError(t, err)

	list, err := client.List(context.Background(), EndpointAbility, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 367, list.Count)
	require.NotNil(t, list.Next)
	assert.Nil(t, list.Previous)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "drizzle", list.Results[1].Name)
}

func TestClientGetByURL(t *testing.T) {
	api := newFakeAPI(t)
	client, err := NewClient(zerolog.Nop(), WithBaseURL(api.base()))
	require.NoError(t, err)

	var ability Ability
	require.NoError(t, client.GetByURL(context.Background(), api.base()+"/ability/overgrow/", &ability))
	assert.Equal(t, "overgrow", ability.Name)
	assert.Equal(t, "ability", client.endpointOf(api.base()+"/ability/overgrow/"))

	err = client.GetByURL(context.Background(), "https://example.com/api/v2/ability/1/", &ability)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestClientOfflineStore(t *testing.T) {
	api := newFakeAPI(t)
	store := newMemStore()
	client, err := NewClient(zerolog.Nop(),
		WithBaseURL(api.base()),
		WithCacheTTL(0),
		WithOfflineStore(store),
	)
	require.NoError(t, err)
	assert.True(t, client.HasOfflineStore())

	var ability Ability
	require.NoError(t, client.Get(context.Background(), EndpointAbility, "overgrow", &ability))
	assert.Len(t, store.data, 1)

	t.Run("offline context reads the store", func(t *testing.T) {
		var got Ability
		require.NoError(t, client.Get(WithOffline(context.Background()), EndpointAbility, "overgrow", &got))
		assert.Equal(t, 65, got.ID)
		assert.Equal(t, int32(1), api.hits.Load())
	})

	t.Run("offline miss is a network error", func(t *testing.T) {
		var got Ability
		err := client.Get(WithOffline(context.Background()), EndpointAbility, "blaze", &got)
		require.Error(t, err)
		assert.Equal(t, errors.CodeNetwork, errors.GetCode(err))
		assert.ErrorIs(t, err, ErrOfflineMiss)
	})

	t.Run("transport failure falls back to the store", func(t *testing.T) {
		api.server.Close()

		var got Ability
		require.NoError(t, client.Get(context.Background(), EndpointAbility, "overgrow", &got))
		assert.Equal(t, "overgrow", got.Name)

		err := client.Get(context.Background(), EndpointAbility, "blaze", &got)
		require.Error(t, err)
		assert.Equal(t, errors.CodeNetwork, errors.GetCode(err))
	})

	t.Run("clear cache empties the store", func(t *testing.T) {
		require.NoError(t, client.ClearCache(context.Background()))
		assert.Empty(t, store.data)
	})
}

func TestTTLCacheEviction(t *testing.T) {
	cache := newTTLCache(2, time.Minute)
	cache.Put("a", []byte("1"))
	cache.Put("b", []byte("2"))
	_, ok := cache.Get("a")
	require.True(t, ok)

	cache.Put("c", []byte("3"))
	assert.Equal(t, 2, cache.Len())

	_, ok = cache.Get("b")
	assert.False(t, ok)
	v, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), v)
}

func TestTTLCacheDisabled(t *testing.T) {
	cache := newTTLCache(2, 0)
	cache.Put("a", []byte("1"))
	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestEnglishHelpers(t *testing.T) {
	en := NamedAPIResource{Name: "en"}
	de := NamedAPIResource{Name: "de"}

	assert.Equal(t, "Overgrow", EnglishName([]Name{{Name: "Notdünger", Language: de}, {Name: "Overgrow", Language: en}}, "overgrow"))
	assert.Equal(t, "overgrow", EnglishName(nil, "overgrow"))
	assert.Equal(t, "second", EnglishFlavorText([]FlavorText{
		{FlavorText: "first", Language: en},
		{FlavorText: "zweite", Language: de},
		{FlavorText: "second", Language: en},
	}))
}
