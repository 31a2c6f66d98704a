package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promotora-credito/app-cadastro/internal/middleware"
	"github.com/promotora-credito/app-cadastro/internal/models"
)

// SimulationAPI runs simulations and proposals
type SimulationAPI interface {
	Simulate(ctx context.Context, token string, req models.SimulationRequest) *models.SimulationResponse
	CreateProposal(ctx context.Context, token string, req models.ProposalRequest) *models.ProposalResponse
}

// SimulationHandlers proxies simulations to the backend
type SimulationHandlers struct {
	service SimulationAPI
}

// NewSimulationHandlers creates the simulation handlers
func NewSimulationHandlers(service SimulationAPI) *SimulationHandlers {
	return &SimulationHandlers{service: service}
}

// Simulate godoc
// @Summary Simular empréstimo
// @Description Valida os campos configurados do produto e executa a simulação no backend.
// @Tags simulation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param data body models.SimulationRequest true "Produto e campos"
// @Success 200 {object} models.SimulationResponse
// @Failure 422 {object} models.SimulationResponse "Campos inválidos ou backend recusou"
// @Router /simulacoes [post]
func (h *SimulationHandlers) Simulate(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body")
		return
	}
	if req.Campos == nil {
		req.Campos = map[string]interface{}{}
	}

	resp := h.service.Simulate(c.Request.Context(), middleware.BearerToken(c), req)
	status := http.StatusOK
	if resp.Simulation == nil {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}

// CreateProposal godoc
// @Summary Criar proposta
// @Tags simulation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param data body models.ProposalRequest true "Simulação e cliente"
// @Success 201 {object} models.ProposalResponse
// @Failure 422 {object} models.ProposalResponse "Backend recusou"
// @Router /propostas [post]
func (h *SimulationHandlers) CreateProposal(c *gin.Context) {
	var req models.ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "Invalid request body")
		return
	}

	resp := h.service.CreateProposal(c.Request.Context(), middleware.BearerToken(c), req)
	status := http.StatusCreated
	if resp.Proposal == nil {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}
