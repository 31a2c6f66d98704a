package models

import "strconv"

// ClientRecord is the client payload exchanged with the lending backend
type ClientRecord map[string]interface{}

// ID returns the record identifier, whatever its JSON type
func (r ClientRecord) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// BackendError is the error body of the lending backend
type BackendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
