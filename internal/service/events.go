package service

// Change-notification events emitted to registered observers. Each mutation
// publishes exactly once, after the store commit, with the full resulting
// entity as payload.
const (
	EventNewFeedback     = "new_feedback"
	EventFeedbackUpdated = "feedback_updated"
	EventNewTicket       = "new_ticket"
	EventTicketUpdated   = "ticket_updated"
	EventCallCenterAlert = "call_center_alert"
	EventSurveyActivated = "survey_activated"
)

// Notifier fans a committed mutation out to real-time observers.
type Notifier interface {
	Publish(event string, payload any)
}

// NopNotifier drops events; used in tests and when no hub is wired.
type NopNotifier struct{}

func (NopNotifier) Publish(string, any) {}
