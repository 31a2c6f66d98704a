package formengine

import (
	"context"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/utils"
)

// EffectKind names a side effect derived from a field write
type EffectKind string

const (
	// EffectLookupCEP asks for the address of Value to be filled under Path
	EffectLookupCEP EffectKind = "lookup_cep"
	// EffectLock makes Paths read-only for the rest of the session
	EffectLock EffectKind = "lock"
	// EffectClear reports dependent Paths that were reset
	EffectClear EffectKind = "clear"
)

// Effect is produced by Apply for the caller to act on
type Effect struct {
	Kind  EffectKind `json:"kind"`
	Path  string     `json:"path,omitempty"`
	Value string     `json:"value,omitempty"`
	Paths []string   `json:"paths,omitempty"`
}

// SectionValidator validates the fields a wizard tab owns
type SectionValidator interface {
	Validate(ctx context.Context, state models.FormState) models.ValidationResult
}

// ValidatorFunc adapts a function to SectionValidator
type ValidatorFunc func(ctx context.Context, state models.FormState) models.ValidationResult

// Validate calls f
func (f ValidatorFunc) Validate(ctx context.Context, state models.FormState) models.ValidationResult {
	return f(ctx, state)
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// stripMarkup removes any markup from free text, keeping it plain
func stripMarkup(raw string) string {
	if !strings.ContainsAny(raw, "<>") {
		return raw
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(textPolicy.Sanitize(raw))
}

// Section is one data-driven wizard tab built from a FormSection
type Section struct {
	def    models.FormSection
	fields map[string]models.FieldDescriptor
	schema *Schema
}

// NewSection resolves the descriptors of def, made absolute by its prefix
func NewSection(def models.FormSection) (*Section, error) {
	deduped := Dedupe(def.Fields)
	abs := make([]models.FieldDescriptor, 0, len(deduped))
	fields := make(map[string]models.FieldDescriptor, len(deduped))
	for _, f := range deduped {
		f.Name = def.FieldPath(f.Name)
		abs = append(abs, f)
		fields[f.Name] = f
	}

	schema, err := Resolve(abs)
	if err != nil {
		return nil, err
	}

	def.Fields = deduped
	return &Section{def: def, fields: fields, schema: schema}, nil
}

// ID returns the section id
func (s *Section) ID() models.SectionID {
	return s.def.Section
}

// Definition returns the deduplicated definition the section was built from
func (s *Section) Definition() models.FormSection {
	return s.def
}

// Field returns the descriptor owning an absolute path
func (s *Section) Field(path string) (models.FieldDescriptor, bool) {
	f, ok := s.fields[path]
	return f, ok
}

// Validate checks only the fields of this section
func (s *Section) Validate(ctx context.Context, state models.FormState) models.ValidationResult {
	_, span := utils.TraceSectionValidation(ctx, string(s.def.Section))
	defer span.End()

	result := s.schema.Validate(state)
	result.Section = s.def.Section
	utils.AddSpanAttribute(span, "validation.valid", result.IsValid)
	return *result
}

// Apply writes one field of this section and reports derived effects
func (s *Section) Apply(state models.FormState, path Path, value interface{}) (models.FormState, []Effect, error) {
	var desc *models.FieldDescriptor
	if f, ok := s.fields[path.String()]; ok {
		desc = &f
	}
	return applyField(state, path, desc, value)
}

// applyField writes value at path, normalizing well known fields. desc is nil
// for paths no section owns.
func applyField(state models.FormState, path Path, desc *models.FieldDescriptor, value interface{}) (models.FormState, []Effect, error) {
	name := path.Last().Key
	previous := GetString(state, path)

	if text, ok := value.(string); ok {
		text = stripMarkup(text)
		switch name {
		case "cpf":
			text = utils.FormatCPF(text)
		case "numero_documento":
			text = utils.FormatDocumentNumber(GetString(state, path.Sibling("tipo_documento")), text)
		case "cep":
			text = utils.FormatCEP(text)
		}
		value = text
	}

	next, err := Mutate(state, path, value)
	if err != nil {
		return nil, nil, err
	}

	current, _ := textValue(value)
	var effects []Effect

	if name == "tipo_documento" {
		docPath := path.Sibling("numero_documento")
		if number := GetString(next, docPath); number != "" {
			if _, err := setIn(map[string]interface{}(next), docPath, utils.FormatDocumentNumber(current, number)); err != nil {
				return nil, nil, err
			}
		}
	}

	if name == "cep" {
		if digits := utils.OnlyDigits(current); len(digits) == 8 {
			effects = append(effects, Effect{
				Kind:  EffectLookupCEP,
				Path:  path.Parent().String(),
				Value: digits,
			})
		}
	}

	if desc != nil && desc.Locks != nil && containsString(desc.Locks.When, current) {
		locked := make([]string, 0, len(desc.Locks.Fields))
		for _, f := range desc.Locks.Fields {
			locked = append(locked, path.Sibling(f).String())
		}
		effects = append(effects, Effect{Kind: EffectLock, Path: path.String(), Paths: locked})
	}

	if children, ok := models.OptionCascade[name]; ok && previous != current {
		cleared := make([]string, 0, len(children))
		for _, child := range children {
			childPath := path.Sibling(child)
			if _, exists := Get(next, childPath); !exists {
				continue
			}
			if _, err := setIn(map[string]interface{}(next), childPath, ""); err != nil {
				return nil, nil, err
			}
			cleared = append(cleared, childPath.String())
		}
		if len(cleared) > 0 {
			effects = append(effects, Effect{Kind: EffectClear, Path: path.String(), Paths: cleared})
		}
	}

	return next, effects, nil
}
