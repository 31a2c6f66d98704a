package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/promotora-credito/app-cadastro/internal/formengine"
	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"github.com/promotora-credito/app-cadastro/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ClientBackend is the part of the backend used by the registration wizard
type ClientBackend interface {
	CreateClient(ctx context.Context, token string, payload models.FormState) (models.ClientRecord, error)
	UpdateClient(ctx context.Context, token, id string, payload models.FormState) (models.ClientRecord, error)
	GetClient(ctx context.Context, token, id string) (models.ClientRecord, error)
}

// AddressLookup resolves a CEP into an address
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*models.Address, error)
}

// AuditLogger records submission attempts
type AuditLogger interface {
	Log(ctx context.Context, entry utils.AuditLog) error
}

// Caller identifies who drives a wizard request
type Caller struct {
	Token string
	Audit utils.AuditContext
}

// WizardService runs registration wizards whose state lives in a SessionStore
type WizardService struct {
	store   SessionStore
	fields  *FieldConfigService
	backend ClientBackend
	cep     AddressLookup
	options *OptionsService
	audit   AuditLogger
	logger  *logging.SafeLogger
	now     func() time.Time
	newID   func() string
}

// NewWizardService creates the wizard service. audit may be nil.
func NewWizardService(store SessionStore, fields *FieldConfigService, backend ClientBackend, cep AddressLookup, options *OptionsService, audit AuditLogger, logger *logging.SafeLogger) *WizardService {
	return &WizardService{
		store:   store,
		fields:  fields,
		backend: backend,
		cep:     cep,
		options: options,
		audit:   audit,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *WizardService) load(ctx context.Context, id string) (*models.WizardSession, *formengine.Wizard, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	wizard, err := formengine.NewWizard(session.Sections)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to rebuild wizard %s: %w", id, err)
	}
	return session, wizard, nil
}

func (s *WizardService) save(ctx context.Context, session *models.WizardSession) error {
	session.UpdatedAt = s.now().UTC()
	return s.store.Save(ctx, session)
}

// Start opens a wizard session. Create mode starts from the default state;
// edit mode hydrates the state from the backend client record.
func (s *WizardService) Start(ctx context.Context, caller Caller, req models.StartWizardRequest) (*models.WizardResponse, error) {
	if req.FormKey == "" {
		req.FormKey = models.FormKeyCliente
	}
	if req.Mode == "" {
		req.Mode = models.WizardModeCreate
	}
	if req.Mode != models.WizardModeCreate && req.Mode != models.WizardModeEdit {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidWizardMode, req.Mode)
	}
	if req.Mode == models.WizardModeEdit && req.ClientID == "" {
		return nil, models.ErrClientIDRequired
	}

	sections, notes, err := s.fields.Sections(ctx, req.FormKey)
	if err != nil {
		return nil, err
	}
	wizard, err := formengine.NewWizard(sections)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &models.WizardSession{
		ID:        s.newID(),
		FormKey:   req.FormKey,
		Mode:      req.Mode,
		ClientID:  req.ClientID,
		Order:     wizard.Order(),
		Sections:  wizard.Sections(),
		State:     models.NewDefaultFormState(),
		CreatedBy: caller.Audit.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Mode == models.WizardModeEdit {
		record, err := s.backend.GetClient(ctx, caller.Token, req.ClientID)
		if err != nil {
			logBackendError(s.logger, "get_client", err)
			return nil, err
		}
		for k, v := range record {
			session.State[k] = v
		}
		// stored documents come back as bare digits, and stored lock
		// triggers must lock their siblings again
		replay := append([]string{"cpf", "numero_documento"}, wizard.LockingPaths()...)
		for _, field := range replay {
			path, err := formengine.ParsePath(field)
			if err != nil {
				continue
			}
			if v := formengine.GetString(session.State, path); v != "" {
				_, _ = wizard.SetField(session, field, v)
			}
		}
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("wizard started",
		zap.String("wizard_id", session.ID),
		zap.String("form_key", session.FormKey),
		zap.String("mode", string(session.Mode)))

	return &models.WizardResponse{Session: session, Notifications: notes}, nil
}

// Get returns a session
func (s *WizardService) Get(ctx context.Context, id string) (*models.WizardResponse, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.WizardResponse{Session: session}, nil
}

// Discard drops a session, as when the wizard is closed
func (s *WizardService) Discard(ctx context.Context, id string) error {
	if _, err := s.store.Load(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// SetField writes one value and acts on the effects it produces: CEP
// back-fill, field locks and cleared dependent dropdowns.
func (s *WizardService) SetField(ctx context.Context, id string, req models.SetFieldRequest) (*models.WizardResponse, error) {
	session, wizard, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	effects, err := wizard.SetField(session, req.Path, req.Value)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("wizard field set",
		zap.String("wizard_id", id),
		zap.String("path", req.Path),
		zap.Any("value", observability.MaskValue(req.Path, req.Value)))

	var notes models.Notifications
	for _, effect := range effects {
		switch effect.Kind {
		case formengine.EffectLookupCEP:
			s.fillAddress(ctx, session, effect, &notes)
		case formengine.EffectLock:
			notes.Info("Bank account fields are now locked for this PIX key type")
		}
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return &models.WizardResponse{Session: session, Notifications: notes}, nil
}

// fillAddress back-fills the address of a CEP. On any failure the address
// fields are left untouched and an error notification is added.
func (s *WizardService) fillAddress(ctx context.Context, session *models.WizardSession, effect formengine.Effect, notes *models.Notifications) {
	address, err := s.cep.Lookup(ctx, effect.Value)
	if err != nil {
		switch {
		case IsLookupMiss(err):
			notes.Error("CEP not found")
		case errors.Is(err, models.ErrRateLimited):
			notes.Error(err.Error())
		default:
			notes.Error("Could not look up the CEP: " + ErrorMessage(err))
		}
		return
	}

	next, err := formengine.ApplyAddress(session.State, effect.Path, *address)
	if err != nil {
		s.logger.Warn("failed to back-fill address", zap.String("wizard_id", session.ID), zap.Error(err))
		notes.Error("Could not fill in the address")
		return
	}
	session.State = next
	notes.Success("Address found")
}

func validationOutcome(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

func (s *WizardService) recordValidations(results ...models.ValidationResult) {
	for _, r := range results {
		observability.SectionValidations.WithLabelValues(string(r.Section), validationOutcome(r.IsValid)).Inc()
	}
}

// Next advances to the next tab when the current one validates
func (s *WizardService) Next(ctx context.Context, id string) (*models.WizardResponse, error) {
	session, wizard, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	result, advanced := wizard.Next(ctx, session)
	s.recordValidations(result)

	var notes models.Notifications
	outcome := "advanced"
	switch {
	case !result.IsValid:
		outcome = "blocked"
		notes.Warning("Fill in the required fields correctly before continuing")
	case !advanced:
		outcome = "last_tab"
	}
	observability.WizardTransitions.WithLabelValues("next", outcome).Inc()

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return &models.WizardResponse{
		Session:       session,
		Validation:    []models.ValidationResult{result},
		Notifications: notes,
	}, nil
}

// Previous moves back one tab
func (s *WizardService) Previous(ctx context.Context, id string) (*models.WizardResponse, error) {
	session, wizard, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome := "first_tab"
	if wizard.Previous(session) {
		outcome = "moved"
	}
	observability.WizardTransitions.WithLabelValues("previous", outcome).Inc()

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return &models.WizardResponse{Session: session}, nil
}

// GoTo jumps to a tab, validating the tabs skipped when moving forward
func (s *WizardService) GoTo(ctx context.Context, id string, section models.SectionID) (*models.WizardResponse, error) {
	session, wizard, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	results, err := wizard.GoTo(ctx, session, section)
	s.recordValidations(results...)

	var notes models.Notifications
	switch {
	case errors.Is(err, models.ErrValidationFailed):
		observability.WizardTransitions.WithLabelValues("goto", "blocked").Inc()
		notes.Warning("Fill in the required fields correctly before continuing")
	case err != nil:
		return nil, err
	default:
		observability.WizardTransitions.WithLabelValues("goto", "moved").Inc()
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return &models.WizardResponse{Session: session, Validation: results, Notifications: notes}, nil
}

// ValidateSection validates one tab without moving
func (s *WizardService) ValidateSection(ctx context.Context, id string, section models.SectionID) (*models.WizardResponse, error) {
	session, wizard, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := wizard.Validate(ctx, section, session.State)
	if err != nil {
		return nil, err
	}
	s.recordValidations(result)

	return &models.WizardResponse{Session: session, Validation: []models.ValidationResult{result}}, nil
}

// Submit validates every tab and sends the sanitized state to the backend.
// An invalid tab becomes the active one and nothing is sent. A backend
// failure keeps the session for another attempt; success discards it.
func (s *WizardService) Submit(ctx context.Context, caller Caller, id string) (*models.SubmitResponse, error) {
	session, wizard, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	mode := string(session.Mode)
	logger := s.logger.With(zap.String("wizard_id", id), zap.String("mode", mode))
	var notes models.Notifications

	results, ok := wizard.ValidateAll(ctx, session)
	s.recordValidations(results...)
	if !ok {
		observability.Submissions.WithLabelValues(mode, "invalid").Inc()
		notes.Warning("Fill in the required fields correctly before submitting")
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
		return &models.SubmitResponse{Session: session, Validation: results, Notifications: notes}, nil
	}

	ctx, span := utils.TraceBusinessLogic(ctx, "submit_client")
	defer span.End()

	payload := formengine.Sanitize(session.State)
	var record models.ClientRecord
	action := utils.AuditActionCreate
	if session.Mode == models.WizardModeEdit {
		action = utils.AuditActionUpdate
		record, err = s.backend.UpdateClient(ctx, caller.Token, session.ClientID, payload)
	} else {
		record, err = s.backend.CreateClient(ctx, caller.Token, payload)
	}

	entry := caller.Audit.Apply(utils.AuditLog{
		SessionID: id,
		Action:    action,
		Resource:  utils.AuditResourceClient,
		ClientID:  session.ClientID,
		Payload:   payload,
	})

	if err != nil {
		utils.RecordErrorInSpan(span, err, attribute.String("wizard.id", id))
		logBackendError(logger, "submit_client", err)
		observability.Submissions.WithLabelValues(mode, "error").Inc()
		notes.Error(ErrorMessage(err))

		entry.Status = utils.AuditStatusFailure
		entry.Error = ErrorMessage(err)
		s.recordAudit(ctx, entry)

		return &models.SubmitResponse{Session: session, Validation: results, Notifications: notes}, nil
	}

	clientID := record.ID()
	if clientID == "" {
		clientID = session.ClientID
	}
	entry.Status = utils.AuditStatusSuccess
	entry.ClientID = clientID
	s.recordAudit(ctx, entry)

	if err := s.store.Delete(ctx, id); err != nil {
		logger.Warn("failed to discard submitted wizard", zap.Error(err))
	}

	observability.Submissions.WithLabelValues(mode, "success").Inc()
	if session.Mode == models.WizardModeEdit {
		notes.Success("Client updated successfully")
	} else {
		notes.Success("Client registered successfully")
	}
	logger.Info("wizard submitted", zap.String("client_id", clientID))

	return &models.SubmitResponse{
		Submitted:     true,
		ClientID:      clientID,
		Validation:    results,
		Notifications: notes,
	}, nil
}

func (s *WizardService) recordAudit(ctx context.Context, entry utils.AuditLog) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(ctx, entry); err != nil {
		s.logger.Error("failed to record submission audit", zap.String("wizard_id", entry.SessionID), zap.Error(err))
	}
}

// LoadOptions loads a cascading option list for a session
func (s *WizardService) LoadOptions(ctx context.Context, caller Caller, id, list, parent string) (*models.OptionsResponse, error) {
	if _, err := s.store.Load(ctx, id); err != nil {
		return nil, err
	}
	return s.options.Load(ctx, caller.Token, id, list, parent)
}
