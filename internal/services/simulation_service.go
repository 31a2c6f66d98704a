package services

import (
	"context"
	"fmt"

	"github.com/promotora-credito/app-cadastro/internal/formengine"
	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SimulationBackend is the part of the backend used by simulations
type SimulationBackend interface {
	Simulate(ctx context.Context, token string, req models.SimulationRequest) (*models.Simulation, error)
	CreateProposal(ctx context.Context, token string, req models.ProposalRequest) (*models.Proposal, error)
}

// SimulationService validates simulation inputs against the product's
// configured fields and proxies simulations and proposals.
type SimulationService struct {
	backend SimulationBackend
	fields  *FieldConfigService
	logger  *logging.SafeLogger
	printer *message.Printer
}

// NewSimulationService creates the simulation service
func NewSimulationService(backend SimulationBackend, fields *FieldConfigService, logger *logging.SafeLogger) *SimulationService {
	return &SimulationService{
		backend: backend,
		fields:  fields,
		logger:  logger,
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}
}

// FormatBRL renders an amount as Brazilian currency, e.g. R$ 1.234,56
func (s *SimulationService) FormatBRL(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	// the printer groups the whole part; cents stay exact
	return s.printer.Sprintf("R$ %s%d,%s", sign, whole, fmt.Sprintf("%02d", cents))
}

// Simulate checks the request fields and runs the simulation
func (s *SimulationService) Simulate(ctx context.Context, token string, req models.SimulationRequest) *models.SimulationResponse {
	var notes models.Notifications
	resp := &models.SimulationResponse{}
	logger := s.logger.With(zap.String("produto_id", req.ProdutoID))

	sections, fieldNotes, err := s.fields.Sections(ctx, models.SimulationFormKey(req.ProdutoID))
	notes = append(notes, fieldNotes...)
	if err != nil {
		logger.Error("failed to load simulation fields", zap.Error(err))
		notes.Error("Could not load the simulation fields")
		resp.Notifications = notes
		return resp
	}
	resp.Fields = sections

	wizard, err := formengine.NewWizard(sections)
	if err != nil {
		logger.Error("invalid simulation fields", zap.Error(err))
		notes.Error("The simulation fields of this product are misconfigured")
		resp.Notifications = notes
		return resp
	}

	state := models.FormState(req.Campos)
	for _, sec := range sections {
		result, _ := wizard.Validate(ctx, sec.Section, state)
		resp.Validation = append(resp.Validation, result)
		if !result.IsValid {
			notes.Warning("Fill in the simulation fields correctly")
			resp.Notifications = notes
			return resp
		}
	}

	req.Campos = formengine.Sanitize(state)
	sim, err := s.backend.Simulate(ctx, token, req)
	if err != nil {
		logBackendError(logger, "simulate", err)
		notes.Error(ErrorMessage(err))
		resp.Notifications = notes
		return resp
	}

	for i := range sim.Parcelas {
		sim.Parcelas[i].ValorFormatado = s.FormatBRL(sim.Parcelas[i].Valor)
	}
	sim.TotalFormatado = s.FormatBRL(sim.ValorTotal)

	resp.Simulation = sim
	notes.Success(fmt.Sprintf("Simulation completed in %d installments", len(sim.Parcelas)))
	resp.Notifications = notes
	return resp
}

// CreateProposal creates a proposal from a simulation
func (s *SimulationService) CreateProposal(ctx context.Context, token string, req models.ProposalRequest) *models.ProposalResponse {
	var notes models.Notifications
	resp := &models.ProposalResponse{}

	proposal, err := s.backend.CreateProposal(ctx, token, req)
	if err != nil {
		logBackendError(s.logger, "create_proposal", err)
		notes.Error(ErrorMessage(err))
		resp.Notifications = notes
		return resp
	}

	resp.Proposal = proposal
	notes.Success("Proposal created successfully")
	resp.Notifications = notes
	return resp
}
