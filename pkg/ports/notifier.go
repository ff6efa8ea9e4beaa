package ports

// Severity classifies a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a user-facing message emitted by the editor core, e.g.
// "definition is not installed". The core never renders dialogs itself.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Notifier delivers notifications to the user. Implementations must not
// block; delivery is fire-and-forget from the core's point of view.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }
