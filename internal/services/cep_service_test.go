package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/utils/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paulista = `{"cep":"01310-100","logradouro":"Avenida Paulista","complemento":"de 612 a 1510 - lado par","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP","estado":"São Paulo"}`

func newViaCEP(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestCEPService(t *testing.T, baseURL string, cache Cache, limiter *RateLimiter) *CEPService {
	t.Helper()
	pool := httpclient.NewHTTPClientPool(2, 2*time.Second)
	t.Cleanup(pool.Close)
	svc := NewCEPService(baseURL, pool, cache, time.Hour, limiter, logging.Logger)
	svc.retry = fastRetry()
	return svc
}

func TestCEPService_LookupFoundAndCached(t *testing.T) {
	srv, calls := newViaCEP(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(paulista))
	})
	cache := newMemoryCache()
	svc := newTestCEPService(t, srv.URL, cache, nil)

	address, err := svc.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", address.Logradouro)
	assert.Equal(t, "São Paulo", address.Cidade)
	assert.Equal(t, "SP", address.UF)
	assert.True(t, cache.has("cep:01310100"))

	again, err := svc.Lookup(context.Background(), "01310100")
	require.NoError(t, err)
	assert.Equal(t, address, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestCEPService_NotFound(t *testing.T) {
	srv, _ := newViaCEP(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": "true"}`))
	})
	svc := newTestCEPService(t, srv.URL, newMemoryCache(), nil)

	_, err := svc.Lookup(context.Background(), "99999-999")
	assert.ErrorIs(t, err, models.ErrCEPNotFound)
	assert.True(t, IsLookupMiss(err))
}

func TestCEPService_InvalidSkipsCall(t *testing.T) {
	srv, calls := newViaCEP(t, func(w http.ResponseWriter, r *http.Request) {})
	svc := newTestCEPService(t, srv.URL, nil, nil)

	for _, cep := range []string{"", "0131-0100", "0131010", "abcde-fgh"} {
		_, err := svc.Lookup(context.Background(), cep)
		assert.ErrorIs(t, err, models.ErrInvalidCEP, cep)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestCEPService_RetriesServerErrors(t *testing.T) {
	var attempt int32
	srv, calls := newViaCEP(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempt, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(paulista))
	})
	svc := newTestCEPService(t, srv.URL, nil, nil)

	address, err := svc.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Bela Vista", address.Bairro)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestCEPService_RateLimited(t *testing.T) {
	srv, calls := newViaCEP(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(paulista))
	})
	limiter := NewRateLimiter(1, time.Hour, logging.Logger)
	svc := newTestCEPService(t, srv.URL, nil, limiter)

	_, err := svc.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)

	_, err = svc.Lookup(context.Background(), "01310-100")
	assert.ErrorIs(t, err, models.ErrRateLimited)
	assert.False(t, IsLookupMiss(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}
