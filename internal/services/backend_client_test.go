package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/utils/httpclient"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) (*BackendClient, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	pool := httpclient.NewHTTPClientPool(2, 2*time.Second)
	t.Cleanup(pool.Close)
	return NewBackendClient(srv.URL+"/", pool, logging.Logger).WithRetry(fastRetry()), &calls
}

func TestBackendClient_ForwardsBearerToken(t *testing.T) {
	client, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clientes", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "52998224725", body["cpf"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 77, "nome": "Maria"}`))
	})

	record, err := client.CreateClient(context.Background(), "tok-123", models.FormState{"cpf": "52998224725"})
	require.NoError(t, err)
	assert.Equal(t, "77", record.ID())
}

func TestBackendClient_GetIsRetried(t *testing.T) {
	var attempt int32
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempt, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id": "c1", "cpf": "52998224725"}`))
	})

	record, err := client.GetClient(context.Background(), "tok", "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", record.ID())
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestBackendClient_SubmissionIsNeverRetried(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message": "Serviço indisponível"}`))
	})

	_, err := client.UpdateClient(context.Background(), "tok", "c1", models.FormState{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, "Serviço indisponível", ErrorMessage(err))

	_, err = client.Simulate(context.Background(), "tok", models.SimulationRequest{ProdutoID: "p1"})
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestBackendClient_ClientErrorsAreNotRetried(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "CPF já cadastrado"}`))
	})

	_, err := client.GetClient(context.Background(), "tok", "c1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "CPF já cadastrado", ErrorMessage(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestBackendClient_ErrorWithoutMessage(t *testing.T) {
	client, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.CreateProposal(context.Background(), "tok", models.ProposalRequest{SimulacaoID: "s", ClienteID: "c"})
	assert.Equal(t, "backend returned status 404", ErrorMessage(err))
}

func TestBackendClient_ListOptionsShapes(t *testing.T) {
	client, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/convenios":
			assert.Empty(t, r.URL.RawQuery)
			_, _ = w.Write([]byte(`[{"id": "1", "nome": "INSS", "ativo": true}]`))
		case "/modalidades":
			assert.Equal(t, "1", r.URL.Query().Get("convenio_id"))
			_, _ = w.Write([]byte(`{"data": [{"id": "5", "nome": "Consignado"}, {"id": "6", "nome": "Cartão"}]}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
	ctx := context.Background()

	items, err := client.ListOptions(ctx, "tok", "convenios", "", "")
	require.NoError(t, err)
	assert.Equal(t, []models.OptionItem{{ID: "1", Nome: "INSS", Ativo: true}}, items)

	items, err = client.ListOptions(ctx, "tok", "modalidades", "convenio_id", "1")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = client.ListOptions(ctx, "tok", "categorias", "modalidade_id", "5")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBackendClient_Simulate(t *testing.T) {
	client, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simulacoes", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "sim-1", "valor_total": "1234.5", "parcelas": [{"numero": 1, "valor": "617.25"}]}`))
	})

	sim, err := client.Simulate(context.Background(), "tok", models.SimulationRequest{ProdutoID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "sim-1", sim.ID)
	assert.True(t, sim.ValorTotal.Equal(decimal.RequireFromString("1234.5")))
	require.Len(t, sim.Parcelas, 1)
}

func TestRouteOf(t *testing.T) {
	assert.Equal(t, "/clientes", routeOf("/clientes"))
	assert.Equal(t, "/clientes/{id}", routeOf("/clientes/123"))
}
