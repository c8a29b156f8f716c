package bot

// Phase is the current step of the scripted data-collection conversation
// for one sender. PhaseStart is explicit: a sender who was never contacted
// and one who finished a cycle both sit at PhaseStart.
type Phase string

const (
	PhaseStart           Phase = "START"
	PhaseAwaitingEmail   Phase = "AWAITING_EMAIL"
	PhaseAwaitingPhone   Phase = "AWAITING_PHONE"
	PhaseAwaitingAddress Phase = "AWAITING_ADDRESS"
)

// SessionStore maps a sender PSID to their conversation phase. Get returns
// PhaseStart for unknown senders; Clear returns a sender to PhaseStart.
type SessionStore interface {
	Get(psid string) Phase
	Set(psid string, phase Phase)
	Clear(psid string)
}
