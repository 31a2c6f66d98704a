package models

// Notification levels
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
	NotificationWarning = "warning"
	NotificationInfo    = "info"
)

// Notification is user facing feedback attached to a response
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Notifications accumulates feedback produced while handling one request
type Notifications []Notification

func (n *Notifications) add(level, message string) {
	*n = append(*n, Notification{Level: level, Message: message})
}

// Success appends a success notification
func (n *Notifications) Success(message string) { n.add(NotificationSuccess, message) }

// Error appends an error notification
func (n *Notifications) Error(message string) { n.add(NotificationError, message) }

// Warning appends a warning notification
func (n *Notifications) Warning(message string) { n.add(NotificationWarning, message) }

// Info appends an informational notification
func (n *Notifications) Info(message string) { n.add(NotificationInfo, message) }
