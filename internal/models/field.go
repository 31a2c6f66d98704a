package models

import (
	"strings"
	"time"
)

// FieldType is the input kind of a form field
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeSelect FieldType = "select"
	FieldTypeDate   FieldType = "date"
	FieldTypeNumber FieldType = "number"
)

// IsValid reports whether the field type is one the form engine renders
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeSelect, FieldTypeDate, FieldTypeNumber:
		return true
	}
	return false
}

// FieldOption is one choice of a select field
type FieldOption struct {
	Value string `json:"value" bson:"value" yaml:"value"`
	Label string `json:"label" bson:"label" yaml:"label"`
}

// FieldLock makes sibling fields read-only once the owning field takes one of the When values.
// Fields are names relative to the owning field's parent path.
type FieldLock struct {
	When   []string `json:"when" bson:"when" yaml:"when"`
	Fields []string `json:"fields" bson:"fields" yaml:"fields"`
}

// FieldDescriptor describes a single form field
type FieldDescriptor struct {
	Name     string        `json:"name" bson:"name" yaml:"name" binding:"required"`
	Label    string        `json:"label" bson:"label" yaml:"label"`
	Type     FieldType     `json:"type" bson:"type" yaml:"type"`
	Required bool          `json:"required" bson:"required" yaml:"required"`
	Options  []FieldOption `json:"options,omitempty" bson:"options,omitempty" yaml:"options,omitempty"`
	Locks    *FieldLock    `json:"locks,omitempty" bson:"locks,omitempty" yaml:"locks,omitempty"`
}

// SectionID identifies a wizard tab
type SectionID string

const (
	SectionDadosPessoais  SectionID = "DadosPessoais"
	SectionContato        SectionID = "Contato"
	SectionEnderecos      SectionID = "Enderecos"
	SectionDadosBancarios SectionID = "DadosBancarios"
	SectionDocumentos     SectionID = "Documentos"
)

// DefaultSectionOrder is the fixed linear tab order of the registration wizard
var DefaultSectionOrder = []SectionID{
	SectionDadosPessoais,
	SectionContato,
	SectionEnderecos,
	SectionDadosBancarios,
}

// IsValidSectionID checks a section id against the enumerated set
func IsValidSectionID(id SectionID) bool {
	switch id {
	case SectionDadosPessoais, SectionContato, SectionEnderecos, SectionDadosBancarios, SectionDocumentos:
		return true
	}
	return false
}

// FormSection groups the fields of one wizard tab.
// When Prefix is set, field names are relative to it.
type FormSection struct {
	FormKey   string            `json:"form_key,omitempty" bson:"form_key" yaml:"-"`
	Section   SectionID         `json:"section" bson:"section" yaml:"section"`
	Title     string            `json:"title,omitempty" bson:"title,omitempty" yaml:"title,omitempty"`
	Prefix    string            `json:"prefix,omitempty" bson:"prefix,omitempty" yaml:"prefix,omitempty"`
	Fields    []FieldDescriptor `json:"fields" bson:"fields" yaml:"fields"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty" bson:"updated_at,omitempty" yaml:"-"`
}

// FieldPath returns the absolute dotted path of a field in this section
func (s FormSection) FieldPath(name string) string {
	if s.Prefix == "" {
		return name
	}
	return strings.TrimSuffix(s.Prefix, ".") + "." + name
}

// FormKeyCliente is the form key of the client registration wizard
const FormKeyCliente = "cliente"

// SimulationFormKey returns the form key holding the simulation fields of a product
func SimulationFormKey(produtoID string) string {
	return "simulacao:" + produtoID
}

// UpsertSectionRequest is the admin payload that replaces the fields of a section
type UpsertSectionRequest struct {
	Title  string            `json:"title"`
	Prefix string            `json:"prefix"`
	Fields []FieldDescriptor `json:"fields" binding:"required,dive"`
}

// SectionsResponse lists the sections configured for a form key
type SectionsResponse struct {
	FormKey       string         `json:"form_key"`
	Sections      []FormSection  `json:"sections"`
	Notifications []Notification `json:"notifications,omitempty"`
}
