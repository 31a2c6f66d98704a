package models

import (
	"strings"
	"time"
)

// WizardMode tells whether a wizard creates a new client or edits an existing one
type WizardMode string

const (
	WizardModeCreate WizardMode = "create"
	WizardModeEdit   WizardMode = "edit"
)

// WizardSession is the server side state of one registration wizard
type WizardSession struct {
	ID        string        `json:"id"`
	FormKey   string        `json:"form_key"`
	Mode      WizardMode    `json:"mode"`
	ClientID  string        `json:"client_id,omitempty"`
	Order     []SectionID   `json:"order"`
	ActiveTab int           `json:"active_tab"`
	Sections  []FormSection `json:"sections"`
	State     FormState     `json:"state"`
	Locked    []string      `json:"locked,omitempty"`
	CreatedBy string        `json:"created_by,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ActiveSection returns the id of the current tab
func (s *WizardSession) ActiveSection() SectionID {
	if s.ActiveTab < 0 || s.ActiveTab >= len(s.Order) {
		return ""
	}
	return s.Order[s.ActiveTab]
}

// IsLocked reports whether a path was made read-only
func (s *WizardSession) IsLocked(path string) bool {
	for _, p := range s.Locked {
		if p == path {
			return true
		}
	}
	return false
}

// LockedUnder returns the first locked path at or below path, so writing a
// parent object cannot replace a read-only child
func (s *WizardSession) LockedUnder(path string) (string, bool) {
	for _, p := range s.Locked {
		if p == path || strings.HasPrefix(p, path+".") {
			return p, true
		}
	}
	return "", false
}

// Lock marks paths read-only, ignoring duplicates
func (s *WizardSession) Lock(paths ...string) {
	for _, p := range paths {
		if !s.IsLocked(p) {
			s.Locked = append(s.Locked, p)
		}
	}
}

// StartWizardRequest starts a registration wizard
type StartWizardRequest struct {
	FormKey  string     `json:"form_key"`
	Mode     WizardMode `json:"mode"`
	ClientID string     `json:"client_id"`
}

// SetFieldRequest writes one value through a dotted path
type SetFieldRequest struct {
	Path  string      `json:"path" binding:"required"`
	Value interface{} `json:"value"`
}

// WizardResponse is returned by every wizard operation
type WizardResponse struct {
	Session       *WizardSession     `json:"session,omitempty"`
	Validation    []ValidationResult `json:"validation,omitempty"`
	Notifications []Notification     `json:"notifications,omitempty"`
}

// SubmitResponse is returned by a wizard submission
type SubmitResponse struct {
	Submitted     bool               `json:"submitted"`
	ClientID      string             `json:"client_id,omitempty"`
	Session       *WizardSession     `json:"session,omitempty"`
	Validation    []ValidationResult `json:"validation,omitempty"`
	Notifications []Notification     `json:"notifications,omitempty"`
}
