package models

import "errors"

// Form engine errors
var (
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	ErrInvalidPath          = errors.New("invalid field path")
	ErrPathConflict         = errors.New("field path crosses a scalar value")
	ErrFieldLocked          = errors.New("field is locked")
	ErrUnknownSection       = errors.New("unknown section")
	ErrValidationFailed     = errors.New("section validation failed")
)

// Session and integration errors
var (
	ErrSessionNotFound   = errors.New("wizard session not found")
	ErrCEPNotFound       = errors.New("cep not found")
	ErrInvalidCEP        = errors.New("invalid cep")
	ErrStaleResponse     = errors.New("option list superseded by a newer request")
	ErrUnknownOptionList = errors.New("unknown option list")
	ErrSectionsNotFound  = errors.New("form sections not configured")
	ErrClientIDRequired  = errors.New("client id is required to edit")
	ErrInvalidWizardMode = errors.New("unknown wizard mode")
	ErrRateLimited       = errors.New("too many lookups, try again shortly")
	ErrUnauthorized      = errors.New("missing bearer token")
)
