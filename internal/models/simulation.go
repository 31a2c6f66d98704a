package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimulationRequest asks the backend to simulate a loan for a product
type SimulationRequest struct {
	ProdutoID string                 `json:"produto_id" binding:"required"`
	ClienteID string                 `json:"cliente_id,omitempty"`
	Campos    map[string]interface{} `json:"campos"`
}

// Installment is one row of the installment table computed by the backend
type Installment struct {
	Numero         int             `json:"numero"`
	Vencimento     string          `json:"vencimento"`
	Valor          decimal.Decimal `json:"valor"`
	Juros          decimal.Decimal `json:"juros"`
	Amortizacao    decimal.Decimal `json:"amortizacao"`
	SaldoDevedor   decimal.Decimal `json:"saldo_devedor"`
	ValorFormatado string          `json:"valor_formatado,omitempty"`
}

// Simulation is the backend answer to a simulation request
type Simulation struct {
	ID              string          `json:"id"`
	ProdutoID       string          `json:"produto_id"`
	ValorSolicitado decimal.Decimal `json:"valor_solicitado"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	TaxaMensal      decimal.Decimal `json:"taxa_mensal"`
	Parcelas        []Installment   `json:"parcelas"`
	TotalFormatado  string          `json:"total_formatado,omitempty"`
	CriadaEm        *time.Time      `json:"criada_em,omitempty"`
}

// SimulationResponse carries a simulation and its fields
type SimulationResponse struct {
	Simulation    *Simulation        `json:"simulation,omitempty"`
	Fields        []FormSection      `json:"fields,omitempty"`
	Validation    []ValidationResult `json:"validation,omitempty"`
	Notifications []Notification     `json:"notifications,omitempty"`
}

// ProposalRequest creates a proposal from a simulation
type ProposalRequest struct {
	SimulacaoID string `json:"simulacao_id" binding:"required"`
	ClienteID   string `json:"cliente_id" binding:"required"`
	PromotoraID string `json:"promotora_id,omitempty"`
}

// Proposal is the backend answer to a proposal creation
type Proposal struct {
	ID          string `json:"id"`
	SimulacaoID string `json:"simulacao_id"`
	ClienteID   string `json:"cliente_id"`
	Status      string `json:"status"`
}

// ProposalResponse wraps a created proposal
type ProposalResponse struct {
	Proposal      *Proposal      `json:"proposal,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}
