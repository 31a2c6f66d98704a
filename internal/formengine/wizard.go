package formengine

import (
	"context"
	"fmt"

	"github.com/promotora-credito/app-cadastro/internal/models"
)

// Wizard orchestrates tab navigation over a fixed linear section order.
// It owns a registry from section id to validator; sections never call back
// into the wizard.
type Wizard struct {
	order    []models.SectionID
	sections map[models.SectionID]*Section
	registry map[models.SectionID]SectionValidator
}

// OrderFor returns the tab order for the given definitions. Documentos is
// appended only when it is configured.
func OrderFor(defs []models.FormSection) []models.SectionID {
	order := make([]models.SectionID, 0, len(models.DefaultSectionOrder)+1)
	order = append(order, models.DefaultSectionOrder...)
	for _, d := range defs {
		if d.Section == models.SectionDocumentos {
			order = append(order, models.SectionDocumentos)
			break
		}
	}
	return order
}

// NewWizard builds one Section per definition and registers it. Tabs of the
// order without a definition validate as empty sections.
func NewWizard(defs []models.FormSection) (*Wizard, error) {
	w := &Wizard{
		order:    OrderFor(defs),
		sections: make(map[models.SectionID]*Section, len(defs)),
		registry: make(map[models.SectionID]SectionValidator, len(defs)),
	}

	for _, def := range defs {
		if !models.IsValidSectionID(def.Section) {
			return nil, fmt.Errorf("%w: %s", models.ErrUnknownSection, def.Section)
		}
		section, err := NewSection(def)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", def.Section, err)
		}
		w.sections[def.Section] = section
		w.registry[def.Section] = section
	}

	for _, id := range w.order {
		if _, ok := w.registry[id]; !ok {
			empty, _ := NewSection(models.FormSection{Section: id})
			w.sections[id] = empty
			w.registry[id] = empty
		}
	}

	return w, nil
}

// Order returns the tab order
func (w *Wizard) Order() []models.SectionID {
	out := make([]models.SectionID, len(w.order))
	copy(out, w.order)
	return out
}

// Register replaces the validator of a tab
func (w *Wizard) Register(id models.SectionID, v SectionValidator) {
	w.registry[id] = v
}

// Section returns the section component of a tab
func (w *Wizard) Section(id models.SectionID) (*Section, bool) {
	s, ok := w.sections[id]
	return s, ok
}

// Sections returns the deduplicated definitions in tab order
func (w *Wizard) Sections() []models.FormSection {
	out := make([]models.FormSection, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.sections[id].Definition())
	}
	return out
}

// LockingPaths returns the absolute paths of fields that lock siblings, in
// tab order
func (w *Wizard) LockingPaths() []string {
	var out []string
	for _, id := range w.order {
		def := w.sections[id].Definition()
		for _, f := range def.Fields {
			if f.Locks != nil {
				out = append(out, def.FieldPath(f.Name))
			}
		}
	}
	return out
}

func (w *Wizard) indexOf(id models.SectionID) int {
	for i, s := range w.order {
		if s == id {
			return i
		}
	}
	return -1
}

// Validate runs the registered validator of one tab
func (w *Wizard) Validate(ctx context.Context, id models.SectionID, state models.FormState) (models.ValidationResult, error) {
	v, ok := w.registry[id]
	if !ok {
		return models.ValidationResult{}, fmt.Errorf("%w: %s", models.ErrUnknownSection, id)
	}
	result := v.Validate(ctx, state)
	result.Section = id
	return result, nil
}

// Next advances the active tab only when the current tab is valid. It
// reports the validation and whether the tab moved.
func (w *Wizard) Next(ctx context.Context, s *models.WizardSession) (models.ValidationResult, bool) {
	w.clampActive(s)
	result, _ := w.Validate(ctx, w.order[s.ActiveTab], s.State)
	if !result.IsValid || s.ActiveTab >= len(w.order)-1 {
		return result, false
	}
	s.ActiveTab++
	return result, true
}

// Previous moves back one tab without validating
func (w *Wizard) Previous(s *models.WizardSession) bool {
	w.clampActive(s)
	if s.ActiveTab == 0 {
		return false
	}
	s.ActiveTab--
	return true
}

// GoTo jumps to a tab. Backward jumps are unconditional. Forward jumps
// validate every tab left behind and stop on the first invalid one.
func (w *Wizard) GoTo(ctx context.Context, s *models.WizardSession, id models.SectionID) ([]models.ValidationResult, error) {
	target := w.indexOf(id)
	if target < 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownSection, id)
	}
	w.clampActive(s)

	var results []models.ValidationResult
	for i := s.ActiveTab; i < target; i++ {
		result, _ := w.Validate(ctx, w.order[i], s.State)
		results = append(results, result)
		if !result.IsValid {
			s.ActiveTab = i
			return results, models.ErrValidationFailed
		}
	}
	s.ActiveTab = target
	return results, nil
}

// ValidateAll validates every tab in order. On the first failure the active
// tab jumps to it and the remaining tabs are not validated.
func (w *Wizard) ValidateAll(ctx context.Context, s *models.WizardSession) ([]models.ValidationResult, bool) {
	results := make([]models.ValidationResult, 0, len(w.order))
	for i, id := range w.order {
		result, _ := w.Validate(ctx, id, s.State)
		results = append(results, result)
		if !result.IsValid {
			s.ActiveTab = i
			return results, false
		}
	}
	return results, true
}

// Owner returns the tab whose section declares path
func (w *Wizard) Owner(path string) (models.SectionID, bool) {
	for _, id := range w.order {
		if _, ok := w.sections[id].Field(path); ok {
			return id, true
		}
	}
	return "", false
}

// SetField writes one value into the session state through the owning
// section. Locked paths are rejected and lock effects are recorded on the
// session.
func (w *Wizard) SetField(s *models.WizardSession, rawPath string, value interface{}) ([]Effect, error) {
	path, err := ParsePath(rawPath)
	if err != nil {
		return nil, err
	}
	key := path.String()
	if locked, ok := s.LockedUnder(key); ok {
		return nil, fmt.Errorf("%w: %s", models.ErrFieldLocked, locked)
	}

	var (
		next    models.FormState
		effects []Effect
	)
	if id, ok := w.Owner(key); ok {
		next, effects, err = w.sections[id].Apply(s.State, path, value)
	} else {
		next, effects, err = applyField(s.State, path, nil, value)
	}
	if err != nil {
		return nil, err
	}

	s.State = next
	for _, e := range effects {
		if e.Kind == EffectLock {
			s.Lock(e.Paths...)
		}
	}
	return effects, nil
}

// ApplyAddress back-fills a looked up address under prefix
func ApplyAddress(state models.FormState, prefix string, address models.Address) (models.FormState, error) {
	base, err := ParsePath(prefix)
	if err != nil {
		return nil, err
	}

	next := Clone(state)
	values := map[string]string{
		"logradouro": address.Logradouro,
		"bairro":     address.Bairro,
		"cidade":     address.Cidade,
		"estado":     address.Estado,
		"uf":         address.UF,
	}
	if address.Complemento != "" {
		values["complemento"] = address.Complemento
	}
	for field, v := range values {
		if _, err := setIn(map[string]interface{}(next), base.Child(field), v); err != nil {
			return nil, fmt.Errorf("failed to write %s.%s: %w", prefix, field, err)
		}
	}
	return next, nil
}

func (w *Wizard) clampActive(s *models.WizardSession) {
	if s.ActiveTab < 0 {
		s.ActiveTab = 0
	}
	if s.ActiveTab >= len(w.order) {
		s.ActiveTab = len(w.order) - 1
	}
}
