package services

import (
	"context"
	"testing"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSimulationBackend struct {
	requests []models.SimulationRequest
	sim      *models.Simulation
	proposal *models.Proposal
	err      error
}

func (f *fakeSimulationBackend) Simulate(ctx context.Context, token string, req models.SimulationRequest) (*models.Simulation, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.sim, nil
}

func (f *fakeSimulationBackend) CreateProposal(ctx context.Context, token string, req models.ProposalRequest) (*models.Proposal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.proposal, nil
}

func newSimulationFixture(t *testing.T) (*SimulationService, *fakeSimulationBackend) {
	t.Helper()
	repo := newFakeSectionRepo()
	require.NoError(t, repo.Upsert(context.Background(), models.FormSection{
		FormKey: models.SimulationFormKey("p1"),
		Section: models.SectionDadosPessoais,
		Fields: []models.FieldDescriptor{
			{Name: "cpf", Type: models.FieldTypeText, Required: true},
			{Name: "valor", Type: models.FieldTypeNumber, Required: true},
		},
	}))
	backend := &fakeSimulationBackend{
		sim: &models.Simulation{
			ID:         "sim-1",
			ValorTotal: decimal.RequireFromString("12.5"),
			Parcelas: []models.Installment{
				{Numero: 1, Valor: decimal.RequireFromString("6.25")},
				{Numero: 2, Valor: decimal.RequireFromString("6.25")},
			},
		},
		proposal: &models.Proposal{ID: "prop-1", Status: "aberta"},
	}
	fields := NewFieldConfigService(repo, nil, time.Hour, logging.Logger)
	return NewSimulationService(backend, fields, logging.Logger), backend
}

func TestSimulationService_InvalidFieldsNeverReachBackend(t *testing.T) {
	svc, backend := newSimulationFixture(t)

	resp := svc.Simulate(context.Background(), "tok", models.SimulationRequest{
		ProdutoID: "p1",
		Campos:    map[string]interface{}{"cpf": "111.111.111-11"},
	})

	assert.Nil(t, resp.Simulation)
	assert.Empty(t, backend.requests)
	require.NotEmpty(t, resp.Validation)
	assert.False(t, resp.Validation[0].IsValid)
	assert.Equal(t, []string{models.NotificationWarning}, notificationLevels(resp.Notifications))
}

func TestSimulationService_FormatsInstallments(t *testing.T) {
	svc, backend := newSimulationFixture(t)

	resp := svc.Simulate(context.Background(), "tok", models.SimulationRequest{
		ProdutoID: "p1",
		Campos:    map[string]interface{}{"cpf": "529.982.247-25", "valor": "5000"},
	})

	require.NotNil(t, resp.Simulation)
	require.Len(t, backend.requests, 1)
	assert.Equal(t, "52998224725", backend.requests[0].Campos["cpf"])
	assert.Equal(t, "R$ 6,25", resp.Simulation.Parcelas[0].ValorFormatado)
	assert.Equal(t, "R$ 12,50", resp.Simulation.TotalFormatado)
	assert.Equal(t, []string{models.NotificationSuccess}, notificationLevels(resp.Notifications))
}

func TestSimulationService_FormatBRL(t *testing.T) {
	svc, _ := newSimulationFixture(t)

	tests := []struct {
		amount string
		want   string
	}{
		{"1234.56", "R$ 1.234,56"},
		{"0.005", "R$ 0,01"},
		{"-10.05", "R$ -10,05"},
		{"90071992547409.93", "R$ 90.071.992.547.409,93"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.FormatBRL(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestSimulationService_BackendErrorBecomesNotification(t *testing.T) {
	svc, backend := newSimulationFixture(t)
	backend.err = &APIError{Service: backendService, StatusCode: 422, Message: "Valor acima do limite"}

	resp := svc.Simulate(context.Background(), "tok", models.SimulationRequest{
		ProdutoID: "p1",
		Campos:    map[string]interface{}{"cpf": "52998224725", "valor": 900000},
	})

	assert.Nil(t, resp.Simulation)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, models.Notification{Level: models.NotificationError, Message: "Valor acima do limite"}, resp.Notifications[0])
}

func TestSimulationService_ProductWithoutFields(t *testing.T) {
	svc, backend := newSimulationFixture(t)

	resp := svc.Simulate(context.Background(), "tok", models.SimulationRequest{ProdutoID: "p2", Campos: map[string]interface{}{}})

	require.NotNil(t, resp.Simulation)
	assert.Len(t, backend.requests, 1)
	assert.Equal(t, []string{models.NotificationInfo, models.NotificationSuccess}, notificationLevels(resp.Notifications))
}

func TestSimulationService_CreateProposal(t *testing.T) {
	svc, backend := newSimulationFixture(t)

	resp := svc.CreateProposal(context.Background(), "tok", models.ProposalRequest{SimulacaoID: "sim-1", ClienteID: "c1"})
	require.NotNil(t, resp.Proposal)
	assert.Equal(t, "prop-1", resp.Proposal.ID)

	backend.err = &APIError{Service: backendService, StatusCode: 500}
	resp = svc.CreateProposal(context.Background(), "tok", models.ProposalRequest{SimulacaoID: "sim-1", ClienteID: "c1"})
	assert.Nil(t, resp.Proposal)
	assert.Equal(t, []string{models.NotificationError}, notificationLevels(resp.Notifications))
}
